package feature

import (
	"github.com/on-the-ground/effect_ive_redux/effects"
)

const (
	DefaultErrorTitle   = "Network Error"
	DefaultErrorMessage = "Something went wrong. Please try again later."
	defaultButtonTitle  = "OK"
)

// Alert is what a feature wants shown to the user. It is either an ErrorAlert or a CustomAlert.
type Alert interface {
	Config() AlertConfig
	isAlert()
}

// ErrorAlert is the standard alert for a failed effect.
type ErrorAlert struct {
	Err error
}

func (ErrorAlert) isAlert() {}

func (ErrorAlert) Config() AlertConfig {
	return AlertConfig{Title: DefaultErrorTitle, Message: DefaultErrorMessage}
}

// CustomAlert carries its own configuration.
type CustomAlert struct {
	AlertConfig
}

func (CustomAlert) isAlert() {}

func (c CustomAlert) Config() AlertConfig {
	return c.AlertConfig
}

// AlertConfig describes an alert. Buttons are optional; dismissing is always possible.
type AlertConfig struct {
	Title     string
	Message   string
	Primary   *AlertButton
	Secondary *AlertButton
}

// AlertButton is a labelled button. An empty title reads "OK".
type AlertButton struct {
	Title string
}

func (b AlertButton) Label() string {
	if b.Title == "" {
		return defaultButtonTitle
	}
	return b.Title
}

// PrimaryLabel is the label of the primary button, "OK" when none is configured.
func (c AlertConfig) PrimaryLabel() string {
	if c.Primary == nil {
		return defaultButtonTitle
	}
	return c.Primary.Label()
}

// AlertAction is the action family shared by features that surface effect failures.
type AlertAction interface {
	isAlertAction()
}

// ErrorResponse reports a failed effect. Unsent is the number of effects whose actions
// will not arrive because of it.
type ErrorResponse struct {
	Err    error
	Unsent int
}

// AlertCompleted reports that the alert was dismissed.
type AlertCompleted struct{}

func (ErrorResponse) isAlertAction()  {}
func (AlertCompleted) isAlertAction() {}

// ReduceAlert applies action to a feature's request counter and alert slot.
//   - ErrorResponse shows an ErrorAlert and settles Unsent requests.
//   - AlertCompleted clears the alert.
func ReduceAlert(requests Requests, alert Alert, action AlertAction) (Requests, Alert) {
	switch a := action.(type) {
	case ErrorResponse:
		return requests.End(a.Unsent), ErrorAlert{Err: a.Err}
	case AlertCompleted:
		return requests, nil
	default:
		return requests, alert
	}
}

// OnError builds the error action of a throw mode from the feature's wrapping of AlertAction.
func OnError[A any](wrap func(AlertAction) A) effects.ErrorAction[A] {
	return func(err error, unsent int) A {
		return wrap(ErrorResponse{Err: err, Unsent: unsent})
	}
}

// ThrowMode resolves a throw mode by name with failures routed through OnError(wrap).
func ThrowMode[A any](name string, wrap func(AlertAction) A) (effects.ThrowMode[A], error) {
	return effects.ThrowModeByName(name, OnError(wrap))
}
