package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	apperrors "ifnexus/internal/errors"
	"ifnexus/internal/metrics"
	"ifnexus/internal/model"
	"ifnexus/internal/repository"
	"ifnexus/internal/storage"
)

const imageSlots = 4

// ProjectForm carries the submitted project fields. Blank list entries are
// ignored.
type ProjectForm struct {
	Title         string
	Subtitle      string
	Description   string
	Type          string
	Course        string
	AuthorIDs     []uint
	AuthorNames   []string
	Objectives    []string
	Methodologies []string
	MainLinks     []string
	ExtraLinks    []string
}

// ProjectFiles are the uploads sent with a project form.
type ProjectFiles struct {
	Document *storage.File
	Images   []storage.File
}

// EditForm prefills the create and edit pages.
type EditForm struct {
	ID             *uint        `json:"id,omitempty"`
	Title          string       `json:"titulo"`
	Subtitle       string       `json:"subtitulo"`
	Description    string       `json:"descricao"`
	Type           string       `json:"tipo"`
	Course         string       `json:"curso"`
	Document       string       `json:"arquivo_nome"`
	Images         []string     `json:"imagens"`
	Authors        []AuthorView `json:"autores"`
	Objectives     []string     `json:"objetivos"`
	Methodologies  []string     `json:"metodologias"`
	MainLink       string       `json:"link_principal"`
	ExtraLinks     []string     `json:"links_extras"`
	ActionURL      string       `json:"action_url"`
	SubmitText     string       `json:"submit_text"`
	HeaderTitle    string       `json:"header_title"`
	HeaderSubtitle string       `json:"header_subtitle"`
}

// ProjectService handles project creation, edition and removal.
type ProjectService interface {
	// Save creates a project when id is nil and updates it otherwise.
	Save(ctx context.Context, userID uint, id *uint, form ProjectForm, files ProjectFiles) (*model.Project, error)
	// Delete removes the project. A non-empty warning reports upload files
	// that could not be removed.
	Delete(ctx context.Context, userID, id uint) (warning string, err error)
	EditForm(ctx context.Context, userID uint, id *uint) (*EditForm, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	store       storage.Store
	showcase    ShowcaseInvalidator
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	store storage.Store,
	showcase ShowcaseInvalidator,
	m *metrics.Metrics,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		store:       store,
		showcase:    showcase,
		metrics:     m,
		logger:      log.With().Str("component", "projects").Logger(),
	}
}

// authorize loads the project and checks the user may change it.
func (s *projectService) authorize(ctx context.Context, userID, id uint) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	ok, err := s.projectRepo.IsCollaborator(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("check collaborator: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrNoPermission
	}
	return project, nil
}

func (s *projectService) Save(ctx context.Context, userID uint, id *uint, form ProjectForm, files ProjectFiles) (*model.Project, error) {
	if id != nil {
		if _, err := s.authorize(ctx, userID, *id); err != nil {
			return nil, err
		}
	}

	form.Title = strings.TrimSpace(form.Title)
	form.Description = strings.TrimSpace(form.Description)
	form.Course = strings.TrimSpace(form.Course)
	if form.Title == "" || form.Description == "" || form.Course == "" {
		return nil, apperrors.ErrMissingRequiredFields
	}

	children, err := s.buildChildren(ctx, form)
	if err != nil {
		return nil, err
	}

	documentKey, imageKeys, err := s.storeFiles(ctx, form.Title, files)
	if err != nil {
		return nil, err
	}

	var saved *model.Project
	err = s.projectRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.ProjectRepository) error {
		project := &model.Project{UserID: userID}
		if id != nil {
			existing, err := repo.FindByIDForUpdate(ctx, *id)
			if err != nil {
				return err
			}
			project = existing
		}

		project.Title = form.Title
		project.Subtitle = strings.TrimSpace(form.Subtitle)
		project.Description = form.Description
		project.Type = strings.TrimSpace(form.Type)
		project.Course = form.Course
		if documentKey != "" {
			project.Document = documentKey
		}
		if len(imageKeys) > 0 {
			project.SetImageList(append(project.ImageList(), imageKeys...))
		}

		if id == nil {
			if err := repo.Create(ctx, project); err != nil {
				return fmt.Errorf("create project: %w", err)
			}
		} else if err := repo.UpdateFields(ctx, project); err != nil {
			return fmt.Errorf("update project: %w", err)
		}

		if err := repo.ReplaceChildren(ctx, project.ID, children); err != nil {
			return fmt.Errorf("save project children: %w", err)
		}
		saved = project
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrProjectSave, err)
	}

	op := "create"
	if id != nil {
		op = "update"
	}
	s.metrics.ProjectWrite(op)
	s.showcase.InvalidateShowcase(ctx)
	s.logger.Info().Uint("project_id", saved.ID).Uint("user_id", userID).Str("op", op).Msg("project saved")
	return saved, nil
}

// buildChildren turns the form lists into rows, skipping blanks. Co-author
// ids must name existing users.
func (s *projectService) buildChildren(ctx context.Context, form ProjectForm) (repository.ProjectChildren, error) {
	var children repository.ProjectChildren

	seen := make(map[uint]bool)
	for _, uid := range form.AuthorIDs {
		if uid == 0 || seen[uid] {
			continue
		}
		seen[uid] = true
		user, err := s.userRepo.FindByID(ctx, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return children, apperrors.ErrInvalidAuthor
			}
			return children, fmt.Errorf("find co-author: %w", err)
		}
		userID := user.ID
		children.Authors = append(children.Authors, model.Author{UserID: &userID, Enrollment: user.Enrollment})
	}
	for _, name := range form.AuthorNames {
		if name = strings.TrimSpace(name); name != "" {
			children.Authors = append(children.Authors, model.Author{Name: name})
		}
	}

	for _, text := range form.Objectives {
		if text = strings.TrimSpace(text); text != "" {
			children.Objectives = append(children.Objectives, model.Objective{Description: text, Position: len(children.Objectives)})
		}
	}
	for _, text := range form.Methodologies {
		if text = strings.TrimSpace(text); text != "" {
			children.Methodologies = append(children.Methodologies, model.Methodology{Description: text, Position: len(children.Methodologies)})
		}
	}
	for _, url := range form.MainLinks {
		if url = strings.TrimSpace(url); url != "" {
			children.Links = append(children.Links, model.Link{URL: url, Kind: model.LinkPrincipal})
		}
	}
	for _, url := range form.ExtraLinks {
		if url = strings.TrimSpace(url); url != "" {
			children.Links = append(children.Links, model.Link{URL: url, Kind: model.LinkExtra})
		}
	}
	return children, nil
}

// storeFiles checks every upload's content type before writing any of them.
// Files already written stay in place if the database work fails later.
func (s *projectService) storeFiles(ctx context.Context, title string, files ProjectFiles) (string, []string, error) {
	type pending struct {
		key  string
		file storage.File
		mime string
	}
	var uploads []pending

	documentKey := ""
	if files.Document != nil {
		mtype, err := storage.Detect(*files.Document)
		if err != nil {
			return "", nil, err
		}
		if !storage.IsPDF(mtype) {
			return "", nil, apperrors.ErrInvalidDocument
		}
		documentKey = storage.ProjectDocumentKey(title, files.Document.Name)
		uploads = append(uploads, pending{documentKey, *files.Document, mtype.String()})
	}

	var imageKeys []string
	for _, img := range files.Images {
		mtype, err := storage.Detect(img)
		if err != nil {
			return "", nil, err
		}
		if !storage.IsImage(mtype) {
			return "", nil, apperrors.ErrInvalidImage
		}
		key := storage.ProjectImageKey(title, img.Name)
		imageKeys = append(imageKeys, key)
		uploads = append(uploads, pending{key, img, mtype.String()})
	}

	for _, u := range uploads {
		if err := s.store.Put(ctx, u.key, u.file.Content, u.mime); err != nil {
			return "", nil, fmt.Errorf("%w: store upload: %w", apperrors.ErrProjectSave, err)
		}
	}
	return documentKey, imageKeys, nil
}

func (s *projectService) Delete(ctx context.Context, userID, id uint) (string, error) {
	project, err := s.authorize(ctx, userID, id)
	if err != nil {
		return "", err
	}

	warning := ""
	if err := s.store.RemovePrefix(ctx, storage.ProjectDir(project.Title)); err != nil {
		warning = fmt.Sprintf("Aviso: falha ao remover arquivos do projeto: %v", err)
		s.logger.Warn().Err(err).Uint("project_id", id).Msg("failed to remove project uploads")
	}

	err = s.projectRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.ProjectRepository) error {
		return repo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return warning, apperrors.ErrProjectNotFound
		}
		return warning, fmt.Errorf("%w: %w", apperrors.ErrProjectDelete, err)
	}

	s.metrics.ProjectWrite("delete")
	s.showcase.InvalidateShowcase(ctx)
	s.logger.Info().Uint("project_id", id).Uint("user_id", userID).Msg("project deleted")
	return warning, nil
}

func (s *projectService) EditForm(ctx context.Context, userID uint, id *uint) (*EditForm, error) {
	if id == nil {
		return &EditForm{
			Images:         make([]string, imageSlots),
			Authors:        []AuthorView{},
			Objectives:     []string{"", "", ""},
			Methodologies:  []string{"", "", ""},
			ExtraLinks:     []string{""},
			ActionURL:      "/criarprojeto",
			SubmitText:     "Cadastrar Projeto",
			HeaderTitle:    "Cadastrar Novo Projeto",
			HeaderSubtitle: "Preencha os dados abaixo para publicar seu projeto na vitrine do IF.",
		}, nil
	}

	if _, err := s.authorize(ctx, userID, *id); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindDetail(ctx, *id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}

	form := &EditForm{
		ID:             id,
		Title:          project.Title,
		Subtitle:       project.Subtitle,
		Description:    project.Description,
		Type:           project.Type,
		Course:         project.Course,
		Document:       project.Document,
		Images:         project.ImageList(),
		Authors:        authorViews(project.Authors),
		ActionURL:      fmt.Sprintf("/editarprojeto/%d", *id),
		SubmitText:     "Atualizar Projeto",
		HeaderTitle:    "Editar Projeto",
		HeaderSubtitle: "Altere os dados abaixo para atualizar seu projeto.",
	}
	for len(form.Images) < imageSlots {
		form.Images = append(form.Images, "")
	}
	for _, o := range project.Objectives {
		form.Objectives = append(form.Objectives, o.Description)
	}
	if len(form.Objectives) == 0 {
		form.Objectives = []string{"", "", ""}
	}
	for _, m := range project.Methodologies {
		form.Methodologies = append(form.Methodologies, m.Description)
	}
	if len(form.Methodologies) == 0 {
		form.Methodologies = []string{"", "", ""}
	}
	form.MainLink, form.ExtraLinks = splitLinks(project.Links)
	if len(form.ExtraLinks) == 0 {
		form.ExtraLinks = []string{""}
	}
	return form, nil
}

func authorViews(authors []model.Author) []AuthorView {
	views := make([]AuthorView, 0, len(authors))
	for _, a := range authors {
		view := AuthorView{
			UserID:     a.UserID,
			Name:       a.DisplayName(),
			Enrollment: a.Enrollment,
			Kind:       a.Kind,
		}
		if a.User != nil && a.User.Enrollment != "" {
			view.Enrollment = a.User.Enrollment
		}
		views = append(views, view)
	}
	return views
}
