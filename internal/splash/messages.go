package splash

import "github.com/karthickk/splash-screen/internal/document"

// DocumentLoadedMsg carries the merged document. Err is set when the user
// document could not be used; Document then holds the defaults.
type DocumentLoadedMsg struct {
	Document *document.Document
	Err      error
}

// LoadedMsg tells the host the configuration is ready and Start may be
// called. It is sent whether or not the user document loaded.
type LoadedMsg struct {
	Err error
}

// ReadyMsg is sent once the overlay accepts input.
type ReadyMsg struct{}
