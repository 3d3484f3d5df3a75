package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"silent-library-backend/internal/config"
	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/logger"
	"silent-library-backend/internal/repository/postgres"
	"silent-library-backend/internal/utils"
)

var genreNames = []string{
	"Fiction", "Non-Fiction", "Science Fiction", "Fantasy", "Mystery",
	"Thriller", "Romance", "Horror", "Biography", "History",
	"Poetry", "Drama", "Adventure", "Children", "Self-Help",
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	userCount := flag.Int("users", 10, "Number of patron accounts to create")
	bookCount := flag.Int("books", 50, "Number of books to create")
	loanCount := flag.Int("loans", 100, "Number of loans to create")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db)
	ctx := context.Background()
	faker := gofakeit.New(0)

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	// Staff account plus patron accounts. Every seeded login uses Password123!
	users := make([]*domain.User, 0, *userCount+1)
	staff := &domain.User{
		Username:     "librarian",
		Email:        "librarian@silentlibrary.example",
		PasswordHash: string(hash),
		FirstName:    "Head",
		LastName:     "Librarian",
		IsStaff:      true,
		IsActive:     true,
	}
	if err := store.UserRepository.Create(ctx, staff); err != nil {
		log.Fatalf("Failed to create staff user: %v", err)
	}
	users = append(users, staff)

	for i := 0; i < *userCount; i++ {
		dob := faker.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
		)
		user := &domain.User{
			Username:     fmt.Sprintf("%s%d", faker.Username(), i),
			Email:        fmt.Sprintf("patron%d@%s", i, faker.DomainName()),
			PasswordHash: string(hash),
			FirstName:    faker.FirstName(),
			LastName:     faker.LastName(),
			DateOfBirth:  &dob,
			IsActive:     true,
		}
		if err := store.UserRepository.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		users = append(users, user)
	}
	logger.Info("Seeded users", "count", len(users))

	genres := make([]*domain.Genre, 0, len(genreNames))
	for _, name := range genreNames {
		g := &domain.Genre{Name: name}
		if err := store.GenreRepository.Create(ctx, g); err != nil {
			log.Fatalf("Failed to create genre %q: %v", name, err)
		}
		genres = append(genres, g)
	}

	authors := make([]*domain.Author, 0, 20)
	for i := 0; i < 20; i++ {
		a := &domain.Author{FirstName: faker.FirstName(), LastName: faker.LastName()}
		if err := store.AuthorRepository.Create(ctx, a); err != nil {
			log.Fatalf("Failed to create author: %v", err)
		}
		authors = append(authors, a)
	}
	logger.Info("Seeded catalog metadata", "genres", len(genres), "authors", len(authors))

	books := make([]*domain.Book, 0, *bookCount)
	for i := 0; i < *bookCount; i++ {
		copies := int32(faker.Number(1, 5))
		book := &domain.Book{
			Title:           faker.BookTitle(),
			ISBN:            fmt.Sprintf("%013d", faker.Number(1000000000000, 9999999999999)),
			TotalCopies:     copies,
			AvailableCopies: copies,
		}
		authorIDs := []int32{authors[faker.Number(0, len(authors)-1)].ID}
		genreIDs := []int32{genres[faker.Number(0, len(genres)-1)].ID}
		if err := store.BookRepository.Create(ctx, book, authorIDs, genreIDs); err != nil {
			log.Fatalf("Failed to create book: %v", err)
		}
		books = append(books, book)
	}
	logger.Info("Seeded books", "count", len(books))

	today := utils.DateOnly(time.Now())
	rate := cfg.DailyFineRate()
	loans, fines, notes, reviews := 0, 0, 0, 0
	for i := 0; i < *loanCount; i++ {
		user := users[faker.Number(1, len(users)-1)] // patrons only
		book := books[faker.Number(0, len(books)-1)]

		borrow := today.AddDate(0, 0, -faker.Number(1, 60))
		due := borrow.AddDate(0, 0, cfg.Loans.PeriodDays)
		loan := &domain.Loan{
			UserID:     user.ID,
			BookID:     book.ID,
			BorrowDate: borrow,
			DueDate:    due,
			Status:     domain.LoanStatusBorrowed,
		}

		switch faker.Number(0, 2) {
		case 0: // returned, maybe late
			returned := due.AddDate(0, 0, faker.Number(-5, 5))
			loan.ReturnDate = &returned
			loan.Status = domain.LoanStatusReturned
		case 1: // still out, overdue when past due
			if due.Before(today) {
				loan.Status = domain.LoanStatusOverdue
			}
		}
		if err := store.LoanRepository.Create(ctx, loan); err != nil {
			log.Fatalf("Failed to create loan: %v", err)
		}
		loans++

		if days := utils.DaysOverdue(loan.DueDate, today); days > 0 && loan.Status == domain.LoanStatusOverdue {
			fine := &domain.Fine{
				LoanID:        loan.ID,
				Amount:        utils.FineFor(days, rate),
				PaymentStatus: domain.FineStatusPending,
				FineDate:      time.Now(),
			}
			if err := store.FineRepository.Create(ctx, fine); err != nil {
				log.Fatalf("Failed to create fine: %v", err)
			}
			fines++

			note := &domain.Notification{
				UserID:    user.ID,
				Text:      fmt.Sprintf("Your loan of \"%s\" is overdue. Please return it as soon as possible.", book.Title),
				Timestamp: time.Now(),
			}
			if err := store.NotificationRepository.Create(ctx, note); err != nil {
				log.Fatalf("Failed to create notification: %v", err)
			}
			notes++
		}

		if loan.Status == domain.LoanStatusReturned && faker.Bool() {
			review := &domain.Review{
				UserID:     user.ID,
				BookID:     book.ID,
				Rating:     int32(faker.Number(1, 5)),
				ReviewText: faker.Sentence(12),
				ReviewDate: time.Now(),
			}
			if err := store.ReviewRepository.Create(ctx, review); err != nil {
				log.Fatalf("Failed to create review: %v", err)
			}
			reviews++
		}
	}

	logger.Info("Seed complete",
		"users", len(users), "books", len(books), "loans", loans,
		"fines", fines, "notifications", notes, "reviews", reviews)
}
