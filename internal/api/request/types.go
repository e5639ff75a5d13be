package request

// CreateLine is the request body for creating a line
type CreateLine struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// ResolveLine is the request body for resolving a line
type ResolveLine struct {
	WinningOption string `json:"winning_option"`
}

// BindMessage is the request body for binding a rendered message to a line
type BindMessage struct {
	MessageRef string `json:"message_ref"`
}

// Signal is the request body for signal add/remove events. The caller
// resolves which line the signal pertains to and supplies it in the URL;
// the body carries the acting member and the toggled symbol.
type Signal struct {
	MemberID    string `json:"member_id"`
	DisplayName string `json:"display_name"`
	Symbol      string `json:"symbol"`
}
