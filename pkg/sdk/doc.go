// Package sdk provides a Go client for the copilot support chat HTTP API.
//
//	client := sdk.New("http://localhost:8080")
//	reply, err := client.Chat(ctx, "I was overcharged for my last ride")
//	if err != nil {
//	    // handle
//	}
//	fmt.Println(reply.Agent, reply.Text)
package sdk
