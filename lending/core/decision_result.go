package core

// DecisionResult represents the outcome of a lending decision. It is
// the explicit event accumulator of the domain: a successful decision
// bundles the mutated Patron aggregate with the events raised, in
// emission order, so the shell can persist and publish both together.
//
// IMPORTANT: DecisionResult should only be constructed using the
// provided factory methods SuccessDecision(patron, events...) and
// ErrorDecision(err). Do not construct DecisionResult directly.
type DecisionResult struct {
	Outcome string
	Patron  Patron       // the mutated aggregate, valid only for success
	Events  DomainEvents // ordered events to publish, valid only for success
	Err     error
}

const (
	successOutcome = "success"
	errorOutcome   = "error"
)

// SuccessDecision creates a DecisionResult carrying the mutated patron
// and the events raised by the decision.
func SuccessDecision(patron Patron, events ...DomainEvent) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Patron:  patron,
		Events:  events,
	}
}

// ErrorDecision creates a DecisionResult indicating a rejected command.
// No mutation is observable on rejection.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasEventsToPublish returns true if the decision raised any events.
func (r DecisionResult) HasEventsToPublish() bool {
	return r.Outcome == successOutcome && len(r.Events) > 0
}

// HasError returns the rejection error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
