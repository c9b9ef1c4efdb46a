// Package view renders the portal's HTML pages. Views are stateless: every
// page is a pure function of the data passed in.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageEditStudent = "edit_student.html"
	pageEditCampus  = "edit_campus.html"
	pageStudent     = "student.html"
	pageCampus      = "campus.html"
	pageError       = "error.html"
)

type StudentFormValues struct {
	ID        string
	Firstname string
	Lastname  string
	Email     string
	ImageURL  string
	GPA       string
	CampusID  string
}

// EditStudentForm feeds the edit student page. MaxID bounds the id input;
// zero leaves it unbounded.
type EditStudentForm struct {
	Action string
	MaxID  int
	Values StudentFormValues
	Error  string
}

type CampusFormValues struct {
	ID          string
	Name        string
	Address     string
	Description string
	ImageURL    string
}

type EditCampusForm struct {
	Action string
	MaxID  int
	Values CampusFormValues
	Error  string
}

type StudentPage struct {
	Student models.StudentDetail
}

type CampusPage struct {
	Campus models.CampusDetail
}

type ErrorPage struct {
	Status  int
	Title   string
	Message string
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"gpa": func(v *float64) string {
		if v == nil {
			return "N/A"
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	},
	"studentPath": func(id int) string { return fmt.Sprintf("/student/%d", id) },
	"campusPath":  func(id int) string { return fmt.Sprintf("/campus/%d", id) },
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, page := range []string{pageEditStudent, pageEditCampus, pageStudent, pageCampus, pageError} {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

func (r *Renderer) EditStudent(w io.Writer, form EditStudentForm) error {
	return r.render(w, pageEditStudent, form)
}

func (r *Renderer) EditCampus(w io.Writer, form EditCampusForm) error {
	return r.render(w, pageEditCampus, form)
}

func (r *Renderer) Student(w io.Writer, page StudentPage) error {
	return r.render(w, pageStudent, page)
}

func (r *Renderer) Campus(w io.Writer, page CampusPage) error {
	return r.render(w, pageCampus, page)
}

func (r *Renderer) Error(w io.Writer, page ErrorPage) error {
	return r.render(w, pageError, page)
}

func (r *Renderer) render(w io.Writer, page string, data interface{}) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
