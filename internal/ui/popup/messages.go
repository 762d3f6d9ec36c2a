package popup

// OpenMsg asks the popup manager to show a dialog popup.
type OpenMsg struct {
	Popup Popup
	Size  SizeConfig
}

// CloseMsg asks the popup manager to close the dialog popup.
type CloseMsg struct{}
