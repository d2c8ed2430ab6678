package engine

import (
	"context"
	"fmt"
)

// ============================================================================
// SESSION: Browser state driven by explicit commands
// ============================================================================
// A UI translates its events into Commands. The session owns the current
// criteria and sort state and answers every command with a fresh Result.
// ============================================================================

// CommandKind tags a Command.
type CommandKind int

const (
	// CmdSelectElement selects Value as the element and resets the line.
	CmdSelectElement CommandKind = iota + 1
	CmdClearElement
	// CmdSelectLine selects Value as the line; AllLines removes the filter.
	CmdSelectLine
	CmdSetFormulaSearch
	CmdSetNameSearch
	// CmdClickColumn applies a header click on Column.
	CmdClickColumn
	CmdResetSort
)

func (k CommandKind) String() string {
	switch k {
	case CmdSelectElement:
		return "select_element"
	case CmdClearElement:
		return "clear_element"
	case CmdSelectLine:
		return "select_line"
	case CmdSetFormulaSearch:
		return "set_formula_search"
	case CmdSetNameSearch:
		return "set_name_search"
	case CmdClickColumn:
		return "click_column"
	case CmdResetSort:
		return "reset_sort"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is one user request.
type Command struct {
	Kind   CommandKind
	Value  string
	Column Column
}

// SelectElement returns a command selecting an element.
func SelectElement(element string) Command { return Command{Kind: CmdSelectElement, Value: element} }

// SelectLine returns a command selecting a line.
func SelectLine(line string) Command { return Command{Kind: CmdSelectLine, Value: line} }

// SearchFormula returns a command setting the formula search term.
func SearchFormula(term string) Command { return Command{Kind: CmdSetFormulaSearch, Value: term} }

// SearchName returns a command setting the name search term.
func SearchName(term string) Command { return Command{Kind: CmdSetNameSearch, Value: term} }

// ClickColumn returns a command for a header click.
func ClickColumn(col Column) Command { return Command{Kind: CmdClickColumn, Column: col} }

// Result is the session's answer to a command.
type Result struct {
	View        ResultView
	Criteria    FilterCriteria
	Sort        SortState
	LineChoices []string
	Status      string
}

// Session holds the browser's filter and sort state.
type Session struct {
	coord    *Coordinator
	criteria FilterCriteria
	sort     SortState
}

// NewSession starts a session with no filters and the default order.
func NewSession(coord *Coordinator) *Session {
	return &Session{coord: coord, sort: DefaultSort()}
}

// Criteria returns the current filter criteria.
func (s *Session) Criteria() FilterCriteria { return s.criteria }

// Sort returns the current sort state.
func (s *Session) Sort() SortState { return s.sort }

// Apply updates the state from cmd and rebuilds the result view.
func (s *Session) Apply(ctx context.Context, cmd Command) (*Result, error) {
	switch cmd.Kind {
	case CmdSelectElement:
		s.criteria.Element = cmd.Value
		s.criteria.Line = AllLines
	case CmdClearElement:
		s.criteria.Element = ""
		s.criteria.Line = AllLines
	case CmdSelectLine:
		s.criteria.Line = cmd.Value
	case CmdSetFormulaSearch:
		s.criteria.FormulaSearch = cmd.Value
	case CmdSetNameSearch:
		s.criteria.NameSearch = cmd.Value
	case CmdClickColumn:
		if cmd.Column == ColumnNone {
			return nil, fmt.Errorf("%w: click without column", ErrUnknownColumn)
		}
		s.sort = s.sort.Toggle(cmd.Column)
	case CmdResetSort:
		s.sort = DefaultSort()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
	}
	return s.Refresh(ctx), nil
}

// Refresh rebuilds the result view for the current state.
func (s *Session) Refresh(ctx context.Context) *Result {
	view := s.coord.Rebuild(ctx, s.criteria, s.sort)
	return &Result{
		View:        view,
		Criteria:    s.criteria,
		Sort:        s.sort,
		LineChoices: s.coord.Dataset().LineChoices(s.criteria.Element),
		Status:      StatusText(view.Len()),
	}
}

// Plot histograms the current selection.
func (s *Session) Plot(ctx context.Context, binWidth float64) (*Histogram, error) {
	return s.coord.Plot(ctx, s.criteria, binWidth)
}

// StatusText returns the result count message shown to users.
func StatusText(n int) string {
	return fmt.Sprintf("%d results found", n)
}
