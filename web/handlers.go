// ABOUTME: HTTP handlers for the client table, forms, and JSON API
// ABOUTME: Every page derives its rows from the session through view.Query
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/harperreed/clientdesk/db"
	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/notify"
	"github.com/harperreed/clientdesk/view"
)

// tableColumns are the columns of the client table.
var tableColumns = []models.Field{
	models.FieldCompany,
	models.FieldProduct,
	models.FieldStatus,
	models.FieldChannel,
	models.FieldAccountExec,
}

// tooltipFields are shown when hovering a row.
var tooltipFields = []models.Field{
	models.FieldStartDate,
	models.FieldEndDate,
	models.FieldDealAmount,
	models.FieldMonthlyVolume,
}

type page struct {
	Title           string
	ContentTemplate string
	Flash           *notify.Message
}

type columnView struct {
	Label     string
	Indicator string
	Href      string
}

type optionView struct {
	Value    string
	Selected bool
}

type filterView struct {
	Param   string
	Label   string
	Options []optionView
}

type rowView struct {
	ID      int64
	Cells   []string
	Tooltip string
}

type listPage struct {
	page
	Caps    models.Capabilities
	Filters []filterView
	Search  string
	Sort    models.SortState
	Columns []columnView
	Rows    []rowView
	Shown   int
	Total   int
}

type formField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Required bool
}

type formPage struct {
	page
	Action string
	Fields []formField
}

type confirmPage struct {
	page
	Client *models.Client
}

func (s *Server) flash(r *http.Request) *notify.Message {
	id := r.URL.Query().Get(paramFlash)
	if id == "" || s.notes == nil {
		return nil
	}
	if msg, ok := s.notes.Take(id); ok {
		return &msg
	}
	return nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.session.Records(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	caps := s.session.Caps
	q := parseQuery(r.URL.Query())
	visible := q.Apply(records, caps)

	data := listPage{
		page:   page{Title: "Clients", ContentTemplate: "list-content", Flash: s.flash(r)},
		Caps:   caps,
		Search: q.Search,
		Sort:   q.Sort,
		Shown:  len(visible),
		Total:  len(records),
	}

	options := view.FilterOptions(records)
	for _, f := range models.FilterableFields {
		current := q.Filters.Get(f)
		fv := filterView{Param: filterParams[f], Label: f.Label()}
		for _, v := range append([]string{models.AllValues}, options[f]...) {
			fv.Options = append(fv.Options, optionView{Value: v, Selected: v == current})
		}
		data.Filters = append(data.Filters, fv)
	}

	for _, f := range tableColumns {
		col := columnView{Label: f.Label()}
		if caps.Sortable {
			next := q
			next.Sort = q.Sort.Toggle(f)
			col.Href = href(next)
			col.Indicator = q.Sort.Indicator(f)
		}
		data.Columns = append(data.Columns, col)
	}

	for _, c := range visible {
		row := rowView{ID: c.ID}
		for _, f := range tableColumns {
			row.Cells = append(row.Cells, c.Value(f))
		}
		if caps.Tooltip {
			row.Tooltip = tooltip(c)
		}
		data.Rows = append(data.Rows, row)
	}

	s.renderTemplate(w, r, http.StatusOK, data)
}

// tooltip summarizes the contract details not shown in the table.
func tooltip(c models.Client) string {
	var parts []string
	for _, f := range tooltipFields {
		if c.Has(f) {
			parts = append(parts, f.Label()+": "+c.Value(f))
		}
	}
	return strings.Join(parts, "\n")
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, "New client", "/clients", formValues(models.Client{}), nil)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	client, ok := s.loadClient(w, r)
	if !ok {
		return
	}
	s.renderForm(w, r, http.StatusOK, "Edit "+client.Company, "/clients/"+strconv.FormatInt(client.ID, 10), formValues(*client), nil)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.save(w, r, 0, "New client", "/clients")
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	client, ok := s.loadClient(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.save(w, r, client.ID, "Edit "+client.Company, "/clients/"+strconv.FormatInt(client.ID, 10))
}

// save runs the edit flow for a submitted form. A rejected candidate
// re-renders the form with what the user typed.
func (s *Server) save(w http.ResponseWriter, r *http.Request, id int64, title, action string) {
	candidate := models.Client{ID: id}
	values := make(map[models.Field]string)
	for _, f := range editableFields() {
		v := r.PostFormValue(string(f))
		values[f] = v
		candidate.Set(f, v)
	}

	out, err := s.session.Save(r.Context(), &candidate)
	switch {
	case errors.Is(err, models.ErrValidation):
		s.renderForm(w, r, http.StatusUnprocessableEntity, title, action, values, &out.Message)
		return
	case errors.Is(err, db.ErrClientNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/?"+paramFlash+"="+out.Message.ID, http.StatusSeeOther)
}

func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	client, ok := s.loadClient(w, r)
	if !ok {
		return
	}
	s.renderTemplate(w, r, http.StatusOK, confirmPage{
		page:   page{Title: "Delete " + client.Company, ContentTemplate: "confirm-content"},
		Client: client,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	out, err := s.session.Delete(r.Context(), id)
	if errors.Is(err, db.ErrClientNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/?"+paramFlash+"="+out.Message.ID, http.StatusSeeOther)
}

func (s *Server) handleAPIClients(w http.ResponseWriter, r *http.Request) {
	records, err := s.session.Records(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	visible := parseQuery(r.URL.Query()).Apply(records, s.session.Caps)
	if visible == nil {
		visible = []models.Client{}
	}
	s.writeJSON(w, r, map[string]any{
		"clients": visible,
		"shown":   len(visible),
		"total":   len(records),
	})
}

func (s *Server) handleAPIOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.session.Options(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.writeJSON(w, r, opts)
}

// loadClient resolves the {id} URL parameter, writing a 404 when it does
// not name a stored client.
func (s *Server) loadClient(w http.ResponseWriter, r *http.Request) (*models.Client, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	client, err := s.session.Clients.Get(r.Context(), id)
	if errors.Is(err, db.ErrClientNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	return client, true
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, title, action string, values map[models.Field]string, flash *notify.Message) {
	data := formPage{
		page:   page{Title: title, ContentTemplate: "form-content", Flash: flash},
		Action: action,
	}
	for _, f := range editableFields() {
		typ := "text"
		if f.Temporal() {
			typ = "date"
		}
		data.Fields = append(data.Fields, formField{
			Name:     string(f),
			Label:    f.Label(),
			Type:     typ,
			Value:    values[f],
			Required: slices.Contains(models.RequiredFields, f),
		})
	}
	s.renderTemplate(w, r, status, data)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", "request_id", RequestIDFromContext(r.Context()), "err", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed", "request_id", RequestIDFromContext(r.Context()), "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// editableFields is every field except the store-assigned ID.
func editableFields() []models.Field {
	var out []models.Field
	for _, f := range models.Fields() {
		if f != models.FieldID {
			out = append(out, f)
		}
	}
	return out
}

func formValues(c models.Client) map[models.Field]string {
	values := make(map[models.Field]string)
	for _, f := range editableFields() {
		values[f] = c.Value(f)
	}
	return values
}
