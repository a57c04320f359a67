// Package taskboard is the client-side view model for the employee task
// board. It mirrors the server's todo/done lists locally, applies
// optimistic reordering on drag events and issues the matching REST
// calls.
package taskboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

// Item mirrors one task as the API serves it.
type Item struct {
	ID   string `json:"_id"`
	Text string `json:"text"`
}

// List selects one of the two board columns.
type List int

const (
	Todo List = iota
	Done
)

// ConfirmFunc is asked before a delete goes out; returning false keeps
// the task. The browser UI shows a confirm dialog here.
type ConfirmFunc func(taskID string) bool

// APIError is a structured error body surfaced by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type Option func(*Board)

func WithClient(client *fasthttp.Client) Option {
	return func(b *Board) { b.client = client }
}

func WithConfirm(confirm ConfirmFunc) Option {
	return func(b *Board) { b.confirm = confirm }
}

func WithTimeout(timeout time.Duration) Option {
	return func(b *Board) { b.timeout = timeout }
}

// Board holds the in-memory task lists for one employee.
type Board struct {
	baseURL string
	empID   int
	client  *fasthttp.Client
	confirm ConfirmFunc
	timeout time.Duration

	todo []Item
	done []Item
}

func New(baseURL string, empID int, opts ...Option) *Board {
	b := &Board{
		baseURL: baseURL,
		empID:   empID,
		client:  &fasthttp.Client{},
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Todo returns a copy of the todo column.
func (b *Board) Todo() []Item {
	return append([]Item(nil), b.todo...)
}

// Done returns a copy of the done column.
func (b *Board) Done() []Item {
	return append([]Item(nil), b.done...)
}

// Load fetches the employee's current lists and mirrors them locally.
// Lists the server has never stored come back null and read as empty.
func (b *Board) Load(ctx context.Context) error {
	var record struct {
		EmpID int    `json:"empId"`
		Todo  []Item `json:"todo"`
		Done  []Item `json:"done"`
	}
	path := fmt.Sprintf("/api/employees/%d/tasks", b.empID)
	if err := b.do(ctx, fasthttp.MethodGet, path, nil, &record); err != nil {
		return err
	}

	b.todo = record.Todo
	b.done = record.Done
	if b.todo == nil {
		b.todo = []Item{}
	}
	if b.done == nil {
		b.done = []Item{}
	}
	return nil
}

// CreateTask posts the text and appends the task locally once the
// server confirms with the generated id.
func (b *Board) CreateTask(ctx context.Context, text string) (Item, error) {
	var created struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/api/employees/%d/tasks", b.empID)
	if err := b.do(ctx, fasthttp.MethodPost, path, map[string]string{"text": text}, &created); err != nil {
		return Item{}, err
	}

	item := Item{ID: created.ID, Text: text}
	b.todo = append(b.todo, item)
	return item, nil
}

// DeleteTask asks for confirmation, deletes server-side, then removes
// the id from both local lists: the board does not track which column
// actually held it. The bool reports whether the delete went out.
func (b *Board) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	if b.confirm != nil && !b.confirm(taskID) {
		return false, nil
	}

	path := fmt.Sprintf("/api/employees/%d/tasks/%s", b.empID, taskID)
	if err := b.do(ctx, fasthttp.MethodDelete, path, nil, nil); err != nil {
		return false, err
	}

	b.todo = withoutItem(b.todo, taskID)
	b.done = withoutItem(b.done, taskID)
	return true, nil
}

// MoveWithinList reorders one column locally and immediately persists
// both lists. Every drop is one network round trip, no debounce.
func (b *Board) MoveWithinList(ctx context.Context, list List, from, to int) error {
	items := b.list(list)
	if from < 0 || from >= len(*items) || to < 0 || to >= len(*items) {
		return fmt.Errorf("move %d -> %d out of range for list of %d", from, to, len(*items))
	}

	*items = moveItem(*items, from, to)
	return b.pushLists(ctx)
}

// MoveBetweenLists moves an item across columns locally. The browser
// board never issued a server call for cross-list moves and that
// behavior is preserved until the intended endpoint is settled; a
// following same-list drop persists both columns anyway.
func (b *Board) MoveBetweenLists(from List, fromIndex int, toIndex int) error {
	src := b.list(from)
	dst := b.list(other(from))
	if fromIndex < 0 || fromIndex >= len(*src) || toIndex < 0 || toIndex > len(*dst) {
		return fmt.Errorf("transfer %d -> %d out of range", fromIndex, toIndex)
	}

	item := (*src)[fromIndex]
	*src = append((*src)[:fromIndex], (*src)[fromIndex+1:]...)
	rest := append([]Item{item}, (*dst)[toIndex:]...)
	*dst = append((*dst)[:toIndex], rest...)
	return nil
}

func (b *Board) pushLists(ctx context.Context) error {
	path := fmt.Sprintf("/api/employees/tasks/%d", b.empID)
	payload := map[string][]Item{"todo": b.todo, "done": b.done}
	return b.do(ctx, fasthttp.MethodPut, path, payload, nil)
}

func (b *Board) list(l List) *[]Item {
	if l == Done {
		return &b.done
	}
	return &b.todo
}

func other(l List) List {
	if l == Done {
		return Todo
	}
	return Done
}

func (b *Board) do(ctx context.Context, method, path string, body any, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(method)
	req.SetRequestURI(b.baseURL + path)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline := time.Now().Add(b.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := b.client.DoDeadline(req, resp, deadline); err != nil {
		return err
	}

	if status := resp.StatusCode(); status >= fasthttp.StatusBadRequest {
		return errorFrom(status, resp.Body())
	}
	if out != nil && len(resp.Body()) > 0 {
		return json.Unmarshal(resp.Body(), out)
	}
	return nil
}

// errorFrom surfaces the structured message when the server sent one
// and falls back to the bare status otherwise.
func errorFrom(status int, body []byte) error {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return &APIError{Status: status, Message: parsed.Message}
	}
	return &APIError{Status: status, Message: fasthttp.StatusMessage(status)}
}

// withoutItem filters id out of items, treating a missing list as empty.
func withoutItem(items []Item, id string) []Item {
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func moveItem(items []Item, from, to int) []Item {
	if from == to {
		return items
	}
	item := items[from]
	items = append(items[:from], items[from+1:]...)
	rest := append([]Item{item}, items[to:]...)
	return append(items[:to], rest...)
}
