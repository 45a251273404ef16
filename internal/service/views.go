package service

import (
	"time"

	"ifnexus/internal/model"
	"ifnexus/internal/storage"
)

// DefaultImage is shown for projects without uploaded images.
const DefaultImage = "/static/img1.jpg"

// ProjectView is a project as listed in galleries and user pages.
type ProjectView struct {
	ID          uint     `json:"id"`
	Title       string   `json:"titulo"`
	Subtitle    string   `json:"subtitulo,omitempty"`
	Description string   `json:"descricao"`
	Type        string   `json:"tipo,omitempty"`
	Course      string   `json:"curso,omitempty"`
	Likes       int      `json:"curtidas"`
	UserLiked   bool     `json:"user_liked"`
	Cover       string   `json:"capa"`
	Images      []string `json:"imagens"`
	Document    string   `json:"arquivo,omitempty"`
	OwnerID     uint     `json:"usuario_id"`
	OwnerName   string   `json:"usuario_nome,omitempty"`
}

func newProjectView(p *model.Project, store storage.Store) ProjectView {
	view := ProjectView{
		ID:          p.ID,
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Description: p.Description,
		Type:        p.Type,
		Course:      p.Course,
		Likes:       p.Likes,
		UserLiked:   p.UserLiked,
		Cover:       DefaultImage,
		Images:      []string{},
		OwnerID:     p.UserID,
	}
	for _, key := range p.ImageList() {
		view.Images = append(view.Images, store.URL(key))
	}
	if len(view.Images) > 0 {
		view.Cover = view.Images[0]
	}
	if p.Document != "" {
		view.Document = store.URL(p.Document)
	}
	if p.Owner != nil {
		view.OwnerName = p.Owner.Name
	}
	return view
}

func newProjectViews(projects []model.Project, store storage.Store) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, newProjectView(&projects[i], store))
	}
	return views
}

// AuthorView credits one author on a project page.
type AuthorView struct {
	UserID     *uint  `json:"usuario_id,omitempty"`
	Name       string `json:"nome"`
	Enrollment string `json:"matricula,omitempty"`
	Kind       string `json:"tipo,omitempty"`
}

// CommentView is a comment with its author and a relative time label.
type CommentView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"conteudo"`
	CreatedAt time.Time `json:"criado_em"`
	Relative  string    `json:"relativo"`
	UserID    uint      `json:"usuario_id"`
	UserName  string    `json:"usuario_nome,omitempty"`
	UserPhoto string    `json:"usuario_foto,omitempty"`
}

// ProjectDetail is everything the project page shows.
type ProjectDetail struct {
	ProjectView
	Authors       []AuthorView  `json:"autores"`
	Objectives    []string      `json:"objetivos"`
	Methodologies []string      `json:"metodologias"`
	MainLink      string        `json:"link_principal,omitempty"`
	ExtraLinks    []string      `json:"links_extras"`
	Comments      []CommentView `json:"comentarios"`
}

// UserSuggestion is one co-author picker result.
type UserSuggestion struct {
	ID         uint   `json:"id"`
	Name       string `json:"nome"`
	Enrollment string `json:"matricula"`
}

// splitLinks picks the principal link and the extra ones. Projects saved
// without link kinds fall back to the first link as principal.
func splitLinks(links []model.Link) (string, []string) {
	principal := ""
	found := false
	for _, l := range links {
		if l.Kind == model.LinkPrincipal {
			principal = l.URL
			found = true
			break
		}
	}
	if !found && len(links) > 0 {
		principal = links[0].URL
	}

	var extras []string
	for _, l := range links {
		if l.Kind == model.LinkExtra && (found || l.URL != principal) {
			extras = append(extras, l.URL)
		}
	}
	return principal, extras
}
