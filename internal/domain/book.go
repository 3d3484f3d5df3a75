package domain

// Book is a catalog entry. available_copies <= total_copies is enforced both by
// a database CHECK constraint and by the guarded copy arithmetic in the book
// repository.
type Book struct {
	ID              int32    `json:"id"`
	Title           string   `json:"title"`
	ISBN            string   `json:"isbn"`
	TotalCopies     int32    `json:"total_copies"`
	AvailableCopies int32    `json:"available_copies"`
	Authors         []Author `json:"authors,omitempty"`
	Genres          []Genre  `json:"genres,omitempty"`
}

type Author struct {
	ID        int32  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Genre struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}
