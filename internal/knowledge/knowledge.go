// Package knowledge holds the compiled-in support knowledge base: per-agent
// policy snippets and the persona instruction each agent answers with.
// Changing this data requires rebuilding the vocabulary and similarity index,
// so everything here is fixed at build time and exposed read-only.
package knowledge

import "github.com/Rafath-b/Customer-Care-Copilot/internal/domain"

var base = map[domain.Agent][]string{
	domain.AgentBilling: {
		"Refunds for rides with significant detours are processed within 5-7 business days.",
		"Cancellation fees are applied if a user cancels 2 minutes after a driver has been assigned.",
		"Users can update their payment methods at any time in the 'Wallet' section of the app.",
		"Promotional codes must be applied before the ride is requested to be valid.",
		"A cleaning fee of up to $150 may be charged if a rider damages or soils a driver's vehicle.",
		"Trip fares are calculated based on a base fare, plus per-minute and per-mile rates that vary by city.",
		"If a payment method fails, the user's account will be placed on hold until the outstanding balance is paid.",
		"Tolls, surcharges, and airport fees are automatically added to the final fare.",
		"Users can request a fare review if they believe the route taken was inefficient.",
	},
	domain.AgentSafety: {
		"All safety incidents must be reported via the in-app Safety Center for official documentation.",
		"All drivers undergo a mandatory annual background check.",
		"In case of an emergency, users should always contact local authorities first by dialing 911.",
		"Our 'Share My Ride' feature allows users to share their live location with trusted contacts.",
		"If the driver shown in the app does not match the driver who arrives, the user should not get in the car and report the issue immediately.",
		"We have a zero-tolerance policy for drugs and alcohol for all drivers.",
		"Service animals are legally permitted in all vehicles, but pets are allowed at the driver's discretion.",
	},
	domain.AgentLostFound: {
		"Users can contact their driver directly through the app for up to 24 hours after the ride ends to inquire about a lost item.",
		"If the driver is unresponsive after 24 hours, the user should file a lost item report with support.",
		"A $15 returned item fee is charged to the user to compensate the driver for their time.",
		"We are not liable for items lost in vehicles, but we will do our best to facilitate a return.",
		"Unclaimed items reported to our support center will be held for 30 days before being donated or disposed of.",
	},
	domain.AgentGeneral: {
		"Users can rate their driver and provide feedback at the end of each trip.",
		"The app's 'Scheduled Rides' feature allows booking a trip up to 30 days in advance.",
		"Our premium service offers newer vehicles and top-rated drivers.",
		"Ride receipts are automatically sent to the user's registered email address after each trip.",
		"The primary account holder must be 18 or older. Minors are not permitted to travel unaccompanied.",
		"Our loyalty program offers points for every dollar spent, which can be redeemed for ride credits.",
	},
}

var personas = map[domain.Agent]string{
	domain.AgentBilling:   `You are an expert customer care agent for a ride-hailing app, specializing in billing. You must use the provided context from the knowledge base to answer the user's query. If the context is relevant, base your answer on it. Provide clear, empathetic, and concise answers for issues like incorrect charges, refund requests, and promotion problems. Always state the ride ID if provided. Suggest concrete next steps.`,
	domain.AgentSafety:    `You are a highly sensitive and trained customer care agent for a ride-hailing app, specializing in safety. You must use the provided context from the knowledge base to answer the user's query. If the context is relevant, base your answer on it. Handle reports of accidents, driver conduct, or harassment with utmost seriousness and empathy. Provide clear instructions and resources for reporting the incident formally. Prioritize user safety.`,
	domain.AgentLostFound: `You are a helpful customer care agent for a ride-hailing app, specializing in lost & found items. You must use the provided context from the knowledge base to answer the user's query. If the context is relevant, base your answer on it. Guide users on how to contact their driver to retrieve a lost item. Explain the process clearly and manage expectations.`,
	domain.AgentGeneral:   `You are a friendly and knowledgeable general customer care agent for a ride-hailing app. You must use the provided context from the knowledge base to answer the user's query. If the context is relevant, base your answer on it. Handle general inquiries about app features, feedback, or any issue that doesn't fall into billing, safety, or lost & found categories.`,
}

// Snippets returns the policy snippets for one agent in their canonical
// (insertion) order. The returned slice is a copy.
func Snippets(agent domain.Agent) []string {
	src := base[agent]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// All returns every snippet across all agents, iterating agents in their
// canonical order. Used to build the similarity index at startup.
func All() []domain.Snippet {
	var out []domain.Snippet
	for _, agent := range domain.Agents() {
		for _, text := range base[agent] {
			out = append(out, domain.Snippet{Agent: agent, Text: text})
		}
	}
	return out
}

// Corpus returns the raw text of every snippet in canonical order.
// This is the input to vocabulary construction.
func Corpus() []string {
	snippets := All()
	out := make([]string, len(snippets))
	for i, s := range snippets {
		out[i] = s.Text
	}
	return out
}

// Persona returns the system instruction for one agent. Unknown agents get
// the general persona so a reply is always possible.
func Persona(agent domain.Agent) string {
	if p, ok := personas[agent]; ok {
		return p
	}
	return personas[domain.AgentGeneral]
}
