package http

// overrideReq is the body of a force-activate/deactivate command. The body
// itself is optional.
type overrideReq struct {
	Reason string `json:"reason"`
}

// appendLogReq is the body of a manual audit-log append.
type appendLogReq struct {
	Action  string         `json:"action" binding:"required"`
	Details map[string]any `json:"details"`
}
