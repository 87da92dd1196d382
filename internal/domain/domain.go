package domain

// Agent identifies one of the four fixed customer-support domains.
// The set is closed: extending it requires redeploying the knowledge base
// and the routing action menu together.
type Agent string

const (
	// AgentBilling handles charges, refunds, payments, and promotions.
	AgentBilling Agent = "BILLING"
	// AgentSafety handles incidents, driver conduct, and emergencies.
	AgentSafety Agent = "SAFETY"
	// AgentLostFound handles items left behind in vehicles.
	AgentLostFound Agent = "LOST_FOUND"
	// AgentGeneral handles everything the other agents do not cover.
	AgentGeneral Agent = "GENERAL"
)

// Agents returns all support agents in their canonical order.
// The order is load-bearing: vocabulary construction and snippet
// tie-breaking both depend on it staying fixed.
func Agents() []Agent {
	return []Agent{AgentBilling, AgentSafety, AgentLostFound, AgentGeneral}
}

// Valid reports whether a is one of the four known agents.
func (a Agent) Valid() bool {
	switch a {
	case AgentBilling, AgentSafety, AgentLostFound, AgentGeneral:
		return true
	}
	return false
}

// Snippet is one immutable knowledge-base entry: a policy sentence
// belonging to a single support agent. Created once at process start,
// never mutated.
type Snippet struct {
	Agent Agent
	Text  string
}

// Reply is the assembled result of one pipeline run: the generated answer,
// the cited snippet texts in retrieval order, the routed agent, and the
// end-to-end latency in whole milliseconds.
type Reply struct {
	Text      string
	Sources   []string
	Agent     Agent
	LatencyMS int64
}

// Action is one entry of the fixed classification menu offered to the
// routing capability. Actions take no parameters; selecting one is the
// entire routing decision.
type Action struct {
	Name        string
	Description string
}
