package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/japaniel/booksearch/pkg/config"
	"github.com/japaniel/booksearch/pkg/db"
	"github.com/japaniel/booksearch/pkg/fetch"
	"github.com/japaniel/booksearch/pkg/logger"
	"github.com/japaniel/booksearch/pkg/textanalyzer"
)

func main() {
	titleFlag := flag.String("title", "", "Book title to look up or store under")
	urlFlag := flag.String("url", "", "Project Gutenberg URL to fetch and analyze")
	dbFlag := flag.String("db", "", "Path to SQLite database (overrides config)")
	configFlag := flag.String("config", "", "Path to YAML config file")
	topFlag := flag.Int("top", 0, "Number of top words to keep (overrides config)")
	listFlag := flag.Bool("list", false, "List stored titles, most recent first")
	deleteFlag := flag.Bool("delete", false, "Delete the records for -title")
	deleteAllFlag := flag.Bool("delete-all", false, "Delete every stored record")
	forceFlag := flag.Bool("force", false, "Confirm -delete-all")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "booksearch: %v\n", err)
		os.Exit(1)
	}
	if *dbFlag != "" {
		cfg.Storage.Path = *dbFlag
	}
	if *topFlag > 0 {
		cfg.Analysis.TopWords = *topFlag
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "booksearch: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := db.Open(cfg.DatabasePath())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer store.Close()
	log.Debug("database ready", zap.String("path", cfg.DatabasePath()))

	app := &app{cfg: cfg, store: store, log: log}

	switch {
	case *deleteAllFlag:
		err = app.deleteAll(*forceFlag)
	case *deleteFlag:
		err = app.deleteTitle(*titleFlag)
	case *listFlag:
		err = app.listTitles()
	case *urlFlag != "":
		err = app.addBook(ctx, *titleFlag, *urlFlag)
	case *titleFlag != "":
		err = app.searchTitle(*titleFlag)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("command failed", zap.Error(err))
	}
}

type app struct {
	cfg   config.Config
	store *db.Store
	log   *zap.Logger
}

// searchTitle looks a title up in the local store and prints its word table.
func (a *app) searchTitle(title string) error {
	title = SanitizeTitle(title)
	if title == "" {
		return errors.New("title must not be empty")
	}

	words, err := a.store.FetchByTitle(title)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Println("Book not found in local database.")
		fmt.Println()
		fmt.Println("If you have a valid Project Gutenberg URL for this book, provide both -title and -url to add it.")
		return nil
	}
	printWords(words)
	return nil
}

// addBook fetches, analyzes and stores a document. With an empty title the
// readability-suggested title of the fetched page is used.
func (a *app) addBook(ctx context.Context, title, rawURL string) error {
	title = SanitizeTitle(title)

	if err := fetch.ValidateURL(rawURL); err != nil {
		return err
	}

	if title != "" {
		existing, err := a.store.FetchByTitle(title)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("a record titled %q already exists; delete it first with -delete", title)
		}
	}

	fetcher := fetch.New(time.Duration(a.cfg.Fetch.TimeoutSec)*time.Second,
		int64(a.cfg.Fetch.MaxBodyMB)*1024*1024, a.log)

	fmt.Printf("Fetching %s...\n", rawURL)
	body, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}

	if title == "" {
		pageURL, _ := url.Parse(rawURL)
		title = SanitizeTitle(fetcher.SuggestTitle(body, pageURL))
		if title == "" {
			return errors.New("no title given and none could be derived from the page; pass -title")
		}
		fmt.Printf("Using title: %s\n", title)
	}

	text := textanalyzer.StripMarkup(fetch.DecodeText(body))
	stop := textanalyzer.DefaultStopWords().With(a.cfg.Analysis.ExtraStopWords...)
	words := textanalyzer.New(stop, a.cfg.Analysis.TopWords).RankWords(text)
	if len(words) == 0 {
		fmt.Println("Book was not found or text is empty.")
		return nil
	}

	if err := a.store.SaveIfAbsent(title, words); err != nil {
		if errors.Is(err, db.ErrTitleExists) {
			return fmt.Errorf("a record titled %q already exists; delete it first with -delete", title)
		}
		return err
	}
	a.log.Debug("saved", zap.String("title", title), zap.Int("words", len(words)))

	printWords(words)
	return nil
}

func (a *app) listTitles() error {
	titles, err := a.store.ListTitles()
	if err != nil {
		return err
	}
	if len(titles) == 0 {
		fmt.Println("No books stored yet.")
		return nil
	}
	for _, t := range titles {
		fmt.Println(t)
	}
	return nil
}

func (a *app) deleteTitle(title string) error {
	title = SanitizeTitle(title)
	if title == "" {
		return errors.New("pass -title to choose what to delete")
	}
	if err := a.store.DeleteByTitle(title); err != nil {
		return err
	}
	fmt.Printf("Deleted records for %q.\n", title)
	return nil
}

func (a *app) deleteAll(force bool) error {
	if !force {
		return errors.New("deleting all records cannot be undone; re-run with -force to confirm")
	}
	if err := a.store.DeleteAll(); err != nil {
		return err
	}
	fmt.Println("All records deleted.")
	return nil
}

// printWords renders the ranked words in fixed-width columns.
func printWords(words []textanalyzer.WordCount) {
	if len(words) == 0 {
		fmt.Println("No words found.")
		return
	}
	fmt.Printf("%-30s%10s\n", "Word", "Frequency")
	fmt.Println("----------------------------------------")
	for _, wc := range words {
		fmt.Printf("%-30s%10d\n", wc.Word, wc.Frequency)
	}
}
