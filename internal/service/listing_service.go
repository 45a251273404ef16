package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"ifnexus/internal/cache"
	apperrors "ifnexus/internal/errors"
	"ifnexus/internal/model"
	"ifnexus/internal/repository"
	"ifnexus/internal/storage"
)

const (
	// PageSize is the number of projects per gallery page.
	PageSize = 12

	showcaseSize     = 4
	showcaseCacheKey = "showcase:top"
	showcaseTTL      = 60 * time.Second

	filterAll = "todos"
)

// ShowcaseCard is one highlighted project on the home page.
type ShowcaseCard struct {
	ID          uint   `json:"id,omitempty"`
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	Image       string `json:"imagem,omitempty"`
	Tag         string `json:"tag"`
	Default     bool   `json:"padrao,omitempty"`
}

// defaultCards fill the showcase while fewer than four projects exist.
var defaultCards = []ShowcaseCard{
	{Title: "IFNexus", Description: "O IFNexus é uma vitrine digital desenvolvida para divulgar e valorizar os projetos criados por estudantes e servidores do IFRN.", Tag: "Informatica", Default: true},
	{Title: "SIMER", Description: "Sistema que monitora o consumo de energia em tempo real, identifica os maiores gastos e sugere formas de economizar.", Tag: "eletro", Default: true},
	{Title: "EcoFios", Description: "Projeto voltado à produção de fios ecológicos reutilizando sobras de tecido. Busca reduzir o desperdício na indústria têxtil.", Tag: "textil", Default: true},
	{Title: "Modus", Description: "Criação de roupas sustentáveis usando materiais ecológicos para reduzir o impacto ambiental da moda.", Tag: "vestuario", Default: true},
}

// ListFilter is the gallery query as received from the request.
type ListFilter struct {
	Course string
	Type   string
	Sort   string
	Query  string
	Page   int
}

// ListResult is one gallery page with the available facets.
type ListResult struct {
	Projects   []ProjectView `json:"projetos"`
	Page       int           `json:"pagina"`
	TotalPages int           `json:"total_paginas"`
	Total      int64         `json:"total"`
	Courses    []string      `json:"cursos"`
	Types      []string      `json:"tipos"`
	Course     string        `json:"curso_selecionado"`
	Type       string        `json:"tipo_selecionado"`
	Sort       string        `json:"ordenacao"`
	Query      string        `json:"q"`
}

// ShowcaseInvalidator drops the cached showcase after writes that can
// change it.
type ShowcaseInvalidator interface {
	InvalidateShowcase(ctx context.Context)
}

// ListingService serves the public read side of the showcase.
type ListingService interface {
	ShowcaseInvalidator
	List(ctx context.Context, filter ListFilter, userID uint) (*ListResult, error)
	Showcase(ctx context.Context) ([]ShowcaseCard, error)
	Detail(ctx context.Context, projectID, userID uint) (*ProjectDetail, error)
}

type listingService struct {
	projectRepo repository.ProjectRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	store       storage.Store
	cache       *cache.Client
	now         func() time.Time
	logger      zerolog.Logger
}

// NewListingService creates a new listing service. A nil cache disables
// showcase caching.
func NewListingService(
	projectRepo repository.ProjectRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	store storage.Store,
	cacheClient *cache.Client,
) ListingService {
	return &listingService{
		projectRepo: projectRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		store:       store,
		cache:       cacheClient,
		now:         time.Now,
		logger:      log.With().Str("component", "listing").Logger(),
	}
}

func (s *listingService) List(ctx context.Context, filter ListFilter, userID uint) (*ListResult, error) {
	filter.Course = normalizeFacet(filter.Course)
	filter.Type = normalizeFacet(filter.Type)
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Sort == "" {
		filter.Sort = repository.SortByLikes
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	query := repository.ProjectFilter{
		Course: filter.Course,
		Type:   filter.Type,
		Query:  filter.Query,
		Sort:   filter.Sort,
		Offset: (page - 1) * PageSize,
		Limit:  PageSize,
	}
	projects, total, err := s.projectRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
		query.Offset = (page - 1) * PageSize
		if projects, total, err = s.projectRepo.Search(ctx, query); err != nil {
			return nil, fmt.Errorf("search projects: %w", err)
		}
	}

	if err := s.markLiked(ctx, userID, projects); err != nil {
		return nil, err
	}

	courses, err := s.projectRepo.DistinctCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	types, err := s.projectRepo.DistinctTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}

	return &ListResult{
		Projects:   newProjectViews(projects, s.store),
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		Courses:    courses,
		Types:      types,
		Course:     filter.Course,
		Type:       filter.Type,
		Sort:       filter.Sort,
		Query:      filter.Query,
	}, nil
}

func normalizeFacet(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, filterAll) {
		return ""
	}
	return v
}

func (s *listingService) markLiked(ctx context.Context, userID uint, projects []model.Project) error {
	if userID == 0 || len(projects) == 0 {
		return nil
	}
	liked, err := s.likeRepo.LikedProjectIDs(ctx, userID, projectIDs(projects))
	if err != nil {
		return fmt.Errorf("load likes: %w", err)
	}
	for i := range projects {
		projects[i].UserLiked = liked[projects[i].ID]
	}
	return nil
}

// Showcase returns the four most liked projects, padded with default cards.
func (s *listingService) Showcase(ctx context.Context) ([]ShowcaseCard, error) {
	var cards []ShowcaseCard
	if s.cache.GetJSON(ctx, showcaseCacheKey, &cards) {
		return cards, nil
	}

	projects, err := s.projectRepo.TopLiked(ctx, showcaseSize)
	if err != nil {
		return nil, fmt.Errorf("load top projects: %w", err)
	}

	cards = make([]ShowcaseCard, 0, showcaseSize)
	for i := range projects {
		view := newProjectView(&projects[i], s.store)
		tag := view.Course
		if tag == "" {
			tag = "Sem curso"
		}
		cards = append(cards, ShowcaseCard{
			ID:          view.ID,
			Title:       view.Title,
			Description: view.Description,
			Image:       view.Cover,
			Tag:         tag,
		})
	}
	if len(cards) < showcaseSize {
		cards = append(cards, defaultCards[len(cards):showcaseSize]...)
	}

	if err := s.cache.SetJSON(ctx, showcaseCacheKey, cards, showcaseTTL); err != nil {
		s.logger.Debug().Err(err).Msg("showcase not cached")
	}
	return cards, nil
}

func (s *listingService) InvalidateShowcase(ctx context.Context) {
	_ = s.cache.Delete(ctx, showcaseCacheKey)
}

// Detail loads the project page. userID 0 means an anonymous visitor.
func (s *listingService) Detail(ctx context.Context, projectID, userID uint) (*ProjectDetail, error) {
	project, err := s.projectRepo.FindDetail(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}

	if userID != 0 {
		liked, err := s.likeRepo.Exists(ctx, userID, projectID)
		if err != nil {
			return nil, fmt.Errorf("load like: %w", err)
		}
		project.UserLiked = liked
	}

	comments, err := s.commentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	detail := &ProjectDetail{
		ProjectView:   newProjectView(project, s.store),
		Authors:       authorViews(project.Authors),
		Objectives:    []string{},
		Methodologies: []string{},
		ExtraLinks:    []string{},
		Comments:      make([]CommentView, 0, len(comments)),
	}
	for _, o := range project.Objectives {
		detail.Objectives = append(detail.Objectives, o.Description)
	}
	for _, m := range project.Methodologies {
		detail.Methodologies = append(detail.Methodologies, m.Description)
	}
	principal, extras := splitLinks(project.Links)
	detail.MainLink = principal
	if extras != nil {
		detail.ExtraLinks = extras
	}

	now := s.now()
	for _, c := range comments {
		view := CommentView{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Relative:  relativeTime(c.CreatedAt, now),
			UserID:    c.UserID,
		}
		if c.User != nil {
			view.UserName = c.User.Name
			view.UserPhoto = c.User.Photo
		}
		detail.Comments = append(detail.Comments, view)
	}
	return detail, nil
}

var relativeMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "agora", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "há 1 minuto", DivBy: time.Minute},
	{D: time.Hour, Format: "há %d minutos", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "há 1 hora", DivBy: time.Hour},
	{D: humanize.Day, Format: "há %d horas", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "há 1 dia", DivBy: humanize.Day},
	{D: humanize.Week, Format: "há %d dias", DivBy: humanize.Day},
}

// relativeTime labels a comment timestamp in Portuguese. Comments a week old
// or more show the full date.
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "data indisponível"
	}
	if now.Sub(t) >= humanize.Week {
		return t.Format("02/01/2006 15:04")
	}
	return humanize.CustomRelTime(t, now, "", "", relativeMagnitudes)
}
