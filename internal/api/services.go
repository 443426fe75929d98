package api

import "github.com/listenupapp/bookshelf-server/internal/service"

// Services groups the business logic services used by the API server.
type Services struct {
	Book           *service.BookService
	List           *service.ListService
	Recommendation *service.RecommendationService
	Tagging        *service.TaggingService
	Share          *service.ShareService
	Search         *service.SearchService // optional; search routes report 503 without it
}
