package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDeclined          = errors.New("credentials declined")
	ErrServerReported    = errors.New("server reported an error")
	ErrMalformedResponse = errors.New("malformed helper response")
	ErrQueryInFlight     = errors.New("plugin query already in flight")
)

type FailureKind int

const (
	FailureCommunication FailureKind = iota + 1
	FailureDeclined
	FailureServer
	FailureMalformed
)

func (k FailureKind) String() string {
	switch k {
	case FailureCommunication:
		return "communication"
	case FailureDeclined:
		return "declined"
	case FailureServer:
		return "server"
	case FailureMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("failure(%d)", int(k))
	}
}

// Failure is what a caller shows the user. Error returns the human-readable
// message; the cause stays reachable through errors.Is and errors.As.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Operation is one of the two account requests the helper serves.
type Operation int

const (
	OperationSignIn Operation = iota
	OperationPluginList
)

type operationMessages struct {
	name          string
	request       RequestKind
	field         string
	communication string
	declined      string
	server        string
	malformed     string
}

var operations = map[Operation]operationMessages{
	OperationSignIn: {
		name:    "sign_in",
		request: RequestLoginAuth,
		field:   FieldEdition,
		communication: "An error occurred while trying to sign in. " +
			"Please contact the helpdesk, and provide the following details.\n\n%s",
		declined:  "Login failed, invalid email or password.",
		server:    "Login failed, an error occurred.\n\n%s",
		malformed: "Login failed, an error occurred.\n\nServer response:\n\n%s",
	},
	OperationPluginList: {
		name:    "plugin_list",
		request: RequestPluginList,
		field:   FieldPlugins,
		communication: "An error occurred while trying to query the plugin list. " +
			"Please contact the help desk, and provide the following details.\n\n%s",
		declined:  "Get plugin list failed, invalid user email or password.",
		server:    "Get plugin list failed, an error occurred.\n\n%s",
		malformed: "Get plugin list failed, an error occurred.\n\nServer response:\n\n%s",
	},
}

func (op Operation) String() string {
	return operations[op].name
}

func (op Operation) Request() RequestKind {
	return operations[op].request
}

// Field is the payload field a successful reply carries for op.
func (op Operation) Field() string {
	return operations[op].field
}

// CommunicationFailure wraps a failed helper invocation.
func (op Operation) CommunicationFailure(err error) *Failure {
	return &Failure{
		Kind:    FailureCommunication,
		Message: fmt.Sprintf(operations[op].communication, err.Error()),
		Err:     err,
	}
}

// ResponseFailure maps a non-success reply to a Failure. It returns nil for
// ResponseSuccess.
func (op Operation) ResponseFailure(resp ParsedResponse) *Failure {
	text := operations[op]
	switch resp.Kind {
	case ResponseSuccess:
		return nil
	case ResponseDeclined:
		return &Failure{Kind: FailureDeclined, Message: text.declined, Err: ErrDeclined}
	case ResponseServerError:
		return &Failure{Kind: FailureServer, Message: fmt.Sprintf(text.server, resp.Message), Err: ErrServerReported}
	default:
		return &Failure{Kind: FailureMalformed, Message: fmt.Sprintf(text.malformed, resp.Raw), Err: ErrMalformedResponse}
	}
}
