package mail

import "errors"

var (
	ErrHostRequired = errors.New("mail: SMTP host is required")
	ErrFromRequired = errors.New("mail: from address is required")
)
