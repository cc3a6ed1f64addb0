package services

import (
	"time"

	"quill/app/models"
	"quill/app/repositories/mock"
)

// fixedClock pins "now" so visibility decisions are deterministic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// testEnv wires every service against fresh in-memory repositories.
type testEnv struct {
	now        time.Time
	users      *mock.UserRepository
	categories *mock.CategoryRepository
	locations  *mock.LocationRepository
	posts      *mock.PostRepository
	comments   *mock.CommentRepository
	sessions   *mock.SessionRepository

	visibility *Visibility
	catalog    *CatalogService
	postSvc    *PostService
	commentSvc *CommentService
	userSvc    *UserService
	taxonomy   *TaxonomyService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		now:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		users:      mock.NewUserRepository(),
		categories: mock.NewCategoryRepository(),
		locations:  mock.NewLocationRepository(),
		posts:      mock.NewPostRepository(),
		comments:   mock.NewCommentRepository(),
		sessions:   mock.NewSessionRepository(),
	}
	clock := fixedClock{now: env.now}
	env.visibility = NewVisibility(env.categories, clock)
	env.catalog = NewCatalogService(env.posts, env.comments, env.categories, env.locations, env.users, clock)
	env.postSvc = NewPostService(env.posts, env.comments, env.visibility, clock)
	env.commentSvc = NewCommentService(env.comments, env.posts, clock)
	env.userSvc = NewUserService(env.users, env.posts, env.comments, env.sessions, clock)
	env.taxonomy = NewTaxonomyService(env.categories, env.locations, env.posts, clock)
	return env
}

func (env *testEnv) addUser(username string) *models.User {
	user := &models.User{Username: username, CreatedAt: env.now}
	if err := env.users.Create(user); err != nil {
		panic(err)
	}
	return user
}

func (env *testEnv) addCategory(slug string, published bool) *models.Category {
	category := &models.Category{
		Title:       slug,
		Description: "about " + slug,
		Slug:        slug,
		IsPublished: published,
		CreatedAt:   env.now,
	}
	if err := env.categories.Create(category); err != nil {
		panic(err)
	}
	return category
}

func (env *testEnv) addPost(author *models.User, category *models.Category, pubDate time.Time, published bool) *models.Post {
	post := &models.Post{
		Title:       "Post",
		Text:        "Body",
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    author.ID,
		CreatedAt:   env.now,
	}
	if category != nil {
		id := category.ID
		post.CategoryID = &id
	}
	if err := env.posts.Create(post); err != nil {
		panic(err)
	}
	return post
}

func (env *testEnv) addComment(author *models.User, post *models.Post, text string) *models.Comment {
	comment := &models.Comment{
		PostID:    post.ID,
		AuthorID:  author.ID,
		Text:      text,
		CreatedAt: env.now,
	}
	if err := env.comments.Create(comment); err != nil {
		panic(err)
	}
	return comment
}
