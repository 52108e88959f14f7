package events

// Action is something a requester may do next. The same decision feeds both
// enforcement in the service and link assembly, so an exposed affordance is
// never one the server would reject.
type Action string

const (
	ActionView   Action = "view"
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

type ActionSet map[Action]struct{}

func (s ActionSet) Has(action Action) bool {
	_, ok := s[action]
	return ok
}

// PermittedActions decides what the requester may do. Reads are open to
// everyone. Any authenticated identity may create. Update is reserved for the
// event's manager; event may be nil when no specific event is in scope.
func PermittedActions(event *Event, requester Identity) ActionSet {
	actions := ActionSet{
		ActionView: {},
		ActionList: {},
	}
	if requester.IsAnonymous() {
		return actions
	}
	actions[ActionCreate] = struct{}{}
	if event != nil && event.Manager == requester {
		actions[ActionUpdate] = struct{}{}
	}
	return actions
}
