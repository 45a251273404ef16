package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ifnexus/internal/model"
)

// SortByLikes orders listings by like count, newest first on ties.
const SortByLikes = "curtidas"

// ProjectFilter narrows a project listing. Empty fields do not filter.
type ProjectFilter struct {
	Course string
	Type   string
	Query  string
	Sort   string
	Offset int
	Limit  int
}

// ProjectChildren are the collections replaced wholesale on every save.
type ProjectChildren struct {
	Authors       []model.Author
	Objectives    []model.Objective
	Methodologies []model.Methodology
	Links         []model.Link
}

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	UpdateFields(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Project, error)
	FindDetail(ctx context.Context, id uint) (*model.Project, error)
	IsCollaborator(ctx context.Context, projectID, userID uint) (bool, error)
	ReplaceChildren(ctx context.Context, projectID uint, children ProjectChildren) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, filter ProjectFilter) ([]model.Project, int64, error)
	DistinctCourses(ctx context.Context) ([]string, error)
	DistinctTypes(ctx context.Context) ([]string, error)
	TopLiked(ctx context.Context, limit int) ([]model.Project, error)
	ListByCollaborator(ctx context.Context, userID uint) ([]model.Project, error)
	ListLikedBy(ctx context.Context, userID uint) ([]model.Project, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProjectRepository) error) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts the project row only; children go through ReplaceChildren.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// UpdateFields writes the editable scalar columns, blanks included.
func (r *projectRepository) UpdateFields(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Model(project).
		Select("titulo", "subtitulo", "descricao", "tipo", "curso", "estrutura", "arquivo").
		Updates(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDForUpdate finds a project by ID with row-level lock for update.
func (r *projectRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := forUpdate(r.db.WithContext(ctx)).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindDetail loads a project with its owner and ordered child collections.
func (r *projectRepository) FindDetail(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id") }
	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("posicao, id") }
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Authors", byID).
		Preload("Authors.User").
		Preload("Objectives", byPosition).
		Preload("Methodologies", byPosition).
		Preload("Links", byID).
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// IsCollaborator reports whether userID owns or co-authors the project.
func (r *projectRepository) IsCollaborator(ctx context.Context, projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", projectID).
		Where("usuario_id = ? OR id IN (?)", userID,
			r.db.Model(&model.Author{}).Select("projeto_id").Where("usuario_id = ?", userID)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceChildren deletes the project's authors, objectives, methodologies and
// links and inserts the given ones.
func (r *projectRepository) ReplaceChildren(ctx context.Context, projectID uint, children ProjectChildren) error {
	db := r.db.WithContext(ctx)
	for _, m := range []interface{}{&model.Author{}, &model.Objective{}, &model.Methodology{}, &model.Link{}} {
		if err := db.Where("projeto_id = ?", projectID).Delete(m).Error; err != nil {
			return err
		}
	}

	for i := range children.Authors {
		children.Authors[i].ID = 0
		children.Authors[i].ProjectID = projectID
		children.Authors[i].User = nil
	}
	for i := range children.Objectives {
		children.Objectives[i].ID = 0
		children.Objectives[i].ProjectID = projectID
	}
	for i := range children.Methodologies {
		children.Methodologies[i].ID = 0
		children.Methodologies[i].ProjectID = projectID
	}
	for i := range children.Links {
		children.Links[i].ID = 0
		children.Links[i].ProjectID = projectID
	}

	if len(children.Authors) > 0 {
		if err := db.Create(&children.Authors).Error; err != nil {
			return err
		}
	}
	if len(children.Objectives) > 0 {
		if err := db.Create(&children.Objectives).Error; err != nil {
			return err
		}
	}
	if len(children.Methodologies) > 0 {
		if err := db.Create(&children.Methodologies).Error; err != nil {
			return err
		}
	}
	if len(children.Links) > 0 {
		if err := db.Create(&children.Links).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the project with its children, comments and likes.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	dependents := []interface{}{
		&model.Author{},
		&model.Objective{},
		&model.Methodology{},
		&model.Link{},
		&model.Comment{},
		&model.Like{},
	}
	for _, m := range dependents {
		if err := db.Where("projeto_id = ?", id).Delete(m).Error; err != nil {
			return err
		}
	}

	res := db.Delete(&model.Project{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Search returns one page of projects matching the filter and the total
// number of matches.
func (r *projectRepository) Search(ctx context.Context, filter ProjectFilter) ([]model.Project, int64, error) {
	matches := func(db *gorm.DB) *gorm.DB {
		if filter.Course != "" {
			db = db.Where("projetos.curso = ?", filter.Course)
		}
		if filter.Type != "" {
			db = db.Where("projetos.tipo = ?", filter.Type)
		}
		if q := strings.TrimSpace(filter.Query); q != "" {
			pattern := "%" + strings.ToLower(q) + "%"
			byAuthor := r.db.Table("autores").
				Select("autores.projeto_id").
				Joins("LEFT JOIN usuarios ON usuarios.id = autores.usuario_id").
				Where("LOWER(autores.nome) LIKE ? OR LOWER(usuarios.nome) LIKE ?", pattern, pattern)
			db = db.Where("LOWER(projetos.titulo) LIKE ? OR LOWER(projetos.descricao) LIKE ? OR projetos.id IN (?)",
				pattern, pattern, byAuthor)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Project{}).Scopes(matches).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "projetos.id DESC"
	if filter.Sort == SortByLikes {
		order = "projetos.curtidas DESC, projetos.id DESC"
	}

	var projects []model.Project
	q := r.db.WithContext(ctx).Scopes(matches).Preload("Owner").Order(order)
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := q.Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *projectRepository) DistinctCourses(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "curso")
}

func (r *projectRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "tipo")
}

func (r *projectRepository) distinct(ctx context.Context, column string) ([]string, error) {
	var values []string
	if err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// TopLiked returns the most liked projects, newest first on ties.
func (r *projectRepository) TopLiked(ctx context.Context, limit int) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).
		Order("curtidas DESC, id DESC").
		Limit(limit).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByCollaborator returns projects the user owns or co-authors.
func (r *projectRepository) ListByCollaborator(ctx context.Context, userID uint) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).
		Where("usuario_id = ? OR id IN (?)", userID,
			r.db.Model(&model.Author{}).Select("projeto_id").Where("usuario_id = ?", userID)).
		Order("id DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListLikedBy returns projects the user liked, most recent like first.
func (r *projectRepository) ListLikedBy(ctx context.Context, userID uint) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).
		Joins("JOIN curtidas ON curtidas.projeto_id = projetos.id").
		Where("curtidas.usuario_id = ?", userID).
		Order("curtidas.id DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// WithTransaction executes a function within a database transaction.
func (r *projectRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProjectRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &projectRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
