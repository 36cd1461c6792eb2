// Package progress reports run progress and status messages to the user.
//
// Reporters are purely observational collaborators: core logic never depends
// on them and tests swap in Discard.
package progress

// Reporter receives start/advance/finish ticks bound to page or repository
// counts, plus free-text status, warning and success messages.
type Reporter interface {
	Start(label string, total int)
	Advance()
	Finish()
	Statusf(format string, args ...any)
	Warnf(format string, args ...any)
	Successf(format string, args ...any)
}

// Discard is a Reporter that drops everything.
type Discard struct{}

func (Discard) Start(string, int)       {}
func (Discard) Advance()                {}
func (Discard) Finish()                 {}
func (Discard) Statusf(string, ...any)  {}
func (Discard) Warnf(string, ...any)    {}
func (Discard) Successf(string, ...any) {}
