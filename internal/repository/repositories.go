package repository

// Repositories groups the table repositories. They are stateless; the
// transaction each call runs in is passed per call.
type Repositories struct {
	Profile  *ProfileRepository
	Solver   *SolverProfileRepository
	Category *CategoryRepository
	Post     *PostRepository
	Response *ResponseRepository
	Message  *MessageRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Profile:  NewProfileRepository(),
		Solver:   NewSolverProfileRepository(),
		Category: NewCategoryRepository(),
		Post:     NewPostRepository(),
		Response: NewResponseRepository(),
		Message:  NewMessageRepository(),
	}
}
