package ucmapi

import (
	"github.com/crewlinker/ucman/ucmid"
)

// Action determines what a command does to a use case.
type Action string

// Supported command actions.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// UseCase describes a managed use-case deployment.
type UseCase struct {
	// ID identifies the use case across commands, records and stack names.
	ID ucmid.ID `json:"id" validate:"required"`
	// Name as shown to administrators.
	Name string `json:"name"`
	// Description as shown to administrators.
	Description string `json:"description"`
	// TemplateName selects the use-case template inside the artifact bucket. Required for
	// create and update commands, checked by the handler.
	TemplateName string `json:"template_name"`
	// Parameters are passed to the deployed stack as-is.
	Parameters map[string]string `json:"parameters"`
}

// Command instructs the management lambda to act on a use case. Commands arrive as the body of
// messages on the request queue.
type Command struct {
	Action  Action  `json:"action" validate:"required,oneof=create update delete"`
	UseCase UseCase `json:"use_case"`
}
