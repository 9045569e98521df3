
package models

import "strings"

// State is a step of the per-verb lookup state machine.
type State string

const (
	StateNotStarted        State = "not_started"
	StateFetching          State = "fetching"
	StateEntryFound        State = "entry_found"
	StateEntryMissing      State = "entry_missing"
	StateDefinitionFetched State = "definition_fetched"
	StateWritten           State = "written"
	StateFailed            State = "failed"
)

// FailureKind is the error taxonomy shared by the console, the report and metrics.
type FailureKind string

const (
	FailureNone          FailureKind = ""
	FailureNetwork       FailureKind = "network"
	FailureBadResponse   FailureKind = "bad_response"
	FailureEntryNotFound FailureKind = "entry_not_found"
	FailureOther         FailureKind = "other"
)

type Result struct {
	RunID      string      `json:"runId,omitempty"`
	Verb       string      `json:"verb"`
	State      State       `json:"state"`
	Failure    FailureKind `json:"failure,omitempty"`
	Error      string      `json:"error,omitempty"`
	Path       string      `json:"path,omitempty"`
	Definition bool        `json:"definition"`
	FetchMs    int64       `json:"fetchMs"`
}

// Note is the per-verb output document.
type Note struct {
	Verb            string
	Usage           string
	Definition      string
	DefinitionFound bool
}

const (
	IndexLink          = "[[_index|índice]]"
	CalloutHeader      = ">[!DICCIONARIO]"
	DefinitionNotFound = ">No existe en el diccionario."
	Footer             = "\n---\n[[_index | índice]]\n[[verbos]]\n[[tiempos verbales]]\n#verbos"
)

// Render assembles the note text: title, usage body, definition callout and footer.
func (n Note) Render() string {
	var b strings.Builder
	b.WriteString("# " + n.Verb + "\n")
	b.WriteString(IndexLink + "\n")
	b.WriteString(terminate(n.Usage))
	b.WriteString(CalloutHeader + "\n")
	b.WriteString(">**" + n.Verb + "**\n")
	if n.DefinitionFound && strings.TrimSpace(n.Definition) != "" {
		b.WriteString(strings.TrimRight(strings.TrimLeft(n.Definition, "\n"), "\n"))
	} else {
		b.WriteString(DefinitionNotFound)
	}
	b.WriteString(Footer)
	return b.String()
}

func terminate(s string) string {
	s = strings.Trim(s, "\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}
