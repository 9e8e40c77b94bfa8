package widget

import "errors"

var (
	ErrInvalidMode         = errors.New("widget: mode must be signin or register")
	ErrMissingWidgetConfig = errors.New("widget: app id, client id and domain are required")
)
