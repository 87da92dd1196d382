package respond

import "context"

// Generator is the external text-generation capability: one prompt plus a
// persona/system instruction in, free text out.
type Generator interface {
	Generate(ctx context.Context, prompt, instruction string) (string, error)
}
