package models

// TabDescriptor is a static catalog entry for one conversation tab.
// Locked is the base lock requirement; it says nothing about a particular
// session's unlock state.
type TabDescriptor struct {
	ID      string `json:"id" yaml:"id"`
	LabelEn string `json:"labelEn" yaml:"label_en"`
	LabelDe string `json:"labelDe" yaml:"label_de"`
	Locked  bool   `json:"locked" yaml:"locked"`
}

// TabInfo is a descriptor combined with a session's unlock state. The Locked
// flag here is effective (derived per session), never stored.
type TabInfo struct {
	ID      string `json:"id"`
	LabelEn string `json:"labelEn"`
	LabelDe string `json:"labelDe"`
	Locked  bool   `json:"locked"`
}

// UnlockTabRequest is the body for POST /api/tabs/unlock.
type UnlockTabRequest struct {
	SessionID string `json:"sessionId"`
	TabID     string `json:"tabId"`
	Password  string `json:"password"`
}
