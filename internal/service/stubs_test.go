package service

import (
	"context"
	"time"

	"inkwell/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	createFn          func(context.Context, *models.User) error
	updateFn          func(context.Context, *models.User) error
	updateFieldsFn    func(context.Context, uint, map[string]interface{}) error
	updateLastLoginFn func(context.Context, uint, time.Time) error
	deleteFn          func(context.Context, uint) error
	listFn            func(context.Context, int, int) ([]models.User, error)
	countFn           func(context.Context) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *userRepoStub) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return s.updateLastLoginFn(ctx, id, at)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:         func(_ context.Context, _ uint) (*models.User, error) { return nil, nil },
		getByUsernameFn:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:          func(_ context.Context, _ *models.User) error { return nil },
		updateFn:          func(_ context.Context, _ *models.User) error { return nil },
		updateFieldsFn:    func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		updateLastLoginFn: func(_ context.Context, _ uint, _ time.Time) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		listFn:            func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		countFn:           func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listPublishedFn    func(context.Context, int, int) ([]*models.Post, error)
	countPublishedFn   func(context.Context) (int64, error)
	getPublishedByIDFn func(context.Context, uint) (*models.Post, error)
	getByIDFn          func(context.Context, uint) (*models.Post, error)
	listByCategoryFn   func(context.Context, uint) ([]*models.Post, error)
	listByAuthorFn     func(context.Context, uint) ([]*models.Post, error)
	countByAuthorFn    func(context.Context, uint) (int64, error)
	listAllFn          func(context.Context, int, int) ([]*models.Post, error)
	countAllFn         func(context.Context) (int64, error)
	createFn           func(context.Context, *models.Post) error
	updateFieldsFn     func(context.Context, uint, map[string]interface{}) error
	deleteFn           func(context.Context, uint) error
	incrementViewsFn   func(context.Context, uint) error
}

func (s *postRepoStub) ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listPublishedFn(ctx, limit, offset)
}
func (s *postRepoStub) CountPublished(ctx context.Context) (int64, error) {
	return s.countPublishedFn(ctx)
}
func (s *postRepoStub) GetPublishedByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getPublishedByIDFn(ctx, id)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByCategory(ctx context.Context, categoryID uint) ([]*models.Post, error) {
	return s.listByCategoryFn(ctx, categoryID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *postRepoStub) CountAll(ctx context.Context) (int64, error) {
	return s.countAllFn(ctx)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listPublishedFn:    func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		countPublishedFn:   func(_ context.Context) (int64, error) { return 0, nil },
		getPublishedByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return nil, nil },
		getByIDFn:          func(_ context.Context, _ uint) (*models.Post, error) { return nil, nil },
		listByCategoryFn:   func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn:     func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		countByAuthorFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		listAllFn:          func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		countAllFn:         func(_ context.Context) (int64, error) { return 0, nil },
		createFn:           func(_ context.Context, _ *models.Post) error { return nil },
		updateFieldsFn:     func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
		incrementViewsFn:   func(_ context.Context, _ uint) error { return nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	listFn              func(context.Context) ([]models.Category, error)
	listWithPostCountFn func(context.Context) ([]models.Category, error)
	getByIDFn           func(context.Context, uint) (*models.Category, error)
	createFn            func(context.Context, *models.Category) error
	updateFn            func(context.Context, *models.Category) error
	deleteFn            func(context.Context, uint) error
	countPostsFn        func(context.Context, uint) (int64, error)
}

func (s *categoryRepoStub) List(ctx context.Context) ([]models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) ListWithPostCount(ctx context.Context) ([]models.Category, error) {
	return s.listWithPostCountFn(ctx)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *categoryRepoStub) CountPosts(ctx context.Context, id uint) (int64, error) {
	return s.countPostsFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listFn:              func(_ context.Context) ([]models.Category, error) { return nil, nil },
		listWithPostCountFn: func(_ context.Context) ([]models.Category, error) { return nil, nil },
		getByIDFn:           func(_ context.Context, _ uint) (*models.Category, error) { return nil, nil },
		createFn:            func(_ context.Context, _ *models.Category) error { return nil },
		updateFn:            func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
		countPostsFn:        func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listByPostFn    func(context.Context, uint) ([]*models.Comment, error)
	updateContentFn func(context.Context, uint, string, time.Time) error
	deleteFn        func(context.Context, uint) error
	countByPostFn   func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) UpdateContent(ctx context.Context, id uint, content string, editedAt time.Time) error {
	return s.updateContentFn(ctx, id, content, editedAt)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.Comment, error) { return nil, nil },
		listByPostFn:    func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateContentFn: func(_ context.Context, _ uint, _ string, _ time.Time) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		countByPostFn:   func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}
