// Package main wires up and runs the password manager: configuration,
// logging, cipher, persistence, the catalog core, and an interactive shell
// gated behind the master login. The shell loop is the single serialization
// point for user commands and session-timer events.
package main

import (
	"bufio"
	"cmp"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/SamuelPGibson/PasswordManager/internal/cipher"
	"github.com/SamuelPGibson/PasswordManager/internal/config"
	"github.com/SamuelPGibson/PasswordManager/internal/db"
	"github.com/SamuelPGibson/PasswordManager/internal/generate"
	"github.com/SamuelPGibson/PasswordManager/internal/logger"
	"github.com/SamuelPGibson/PasswordManager/internal/models"
	"github.com/SamuelPGibson/PasswordManager/internal/repository"
	"github.com/SamuelPGibson/PasswordManager/internal/search"
	"github.com/SamuelPGibson/PasswordManager/internal/session"
	"github.com/SamuelPGibson/PasswordManager/internal/vault"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const unsavedMessage = "There are unsaved changes to the current account. Continuing will discard them. Continue anyway?"

func main() {
	var encodeText string
	flag.StringVar(&encodeText, "encode", "",
		"raw-encode the given text for use as the master secret, then exit")

	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ciph, err := cipher.NewAESGCM()
	if err != nil {
		zapLogger.Fatal("cannot init cipher", zap.Error(err))
	}

	if encodeText != "" {
		encoded, err := ciph.RawEncode(encodeText)
		if err != nil {
			zapLogger.Fatal("cannot encode secret", zap.Error(err))
		}
		fmt.Println(encoded)
		return
	}

	if options.MasterSecret == "" {
		zapLogger.Fatal("no master secret configured; create one with -encode and pass it via -secret or MASTER_SECRET")
	}

	// Pick the persistence store: PostgreSQL when a DSN is configured,
	// otherwise the JSON vault file.
	var repo vault.Repository
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		repo = repository.NewPostgres(postgresDB)
	} else {
		repo = repository.NewFile(options.VaultPath)
	}

	store := vault.NewStore(repo, zapLogger)
	if err := store.Load(); err != nil {
		zapLogger.Fatal("cannot load catalog", zap.Error(err))
	}

	selection := vault.NewSelection(store, zapLogger)
	a := &app{
		options:    options,
		log:        zapLogger,
		cipher:     ciph,
		store:      store,
		selection:  selection,
		projection: vault.NewProjection(store, selection),
		edit:       vault.NewEditSession(store, ciph, zapLogger),
		index:      search.New(store.Names()),
		gate:       session.NewGate(ciph, options.MasterSecret, options.MaxAttempts, zapLogger),
		timer:      session.NewTimer(options.TickRate),
		scanner:    bufio.NewScanner(os.Stdin),
		remaining:  options.TimeoutSeconds,
	}
	a.run()
}

// app owns the wired catalog core and drives it from the shell loop.
type app struct {
	options    *config.Options
	log        *zap.Logger
	cipher     cipher.Cipher
	store      *vault.Store
	selection  *vault.Selection
	projection *vault.Projection
	edit       *vault.EditSession
	index      *search.Index
	gate       *session.Gate
	timer      *session.Timer
	scanner    *bufio.Scanner
	remaining  int
}

// run alternates between the login gate and the catalog shell until the
// user exits or the gate is exhausted.
func (a *app) run() {
	defer a.timer.Stop()
	for {
		if !a.login() {
			// Attempt threshold reached: destructive end of session.
			fmt.Println("Too many failed attempts. Goodbye.")
			os.Exit(1)
		}
		a.timer.Start(a.options.TimeoutSeconds)
		a.remaining = a.options.TimeoutSeconds
		if a.shell() == "exit" {
			return
		}
		// Inactivity lockout: back to the gate with a fresh attempt count.
		a.gate.Lock()
		_ = a.gate.Reset()
		fmt.Println("\nSession locked due to inactivity.")
	}
}

// login prompts for the master password and session key until the gate
// unlocks. Returns false when attempts are exhausted.
func (a *app) login() bool {
	for {
		password, err := a.promptSecret("Password: ")
		if err != nil {
			return false
		}
		key, err := a.promptSecret("Encryption Key: ")
		if err != nil {
			return false
		}

		_, err = a.gate.Attempt(password, key)
		switch {
		case err == nil:
			return true
		case errors.Is(err, session.ErrLockoutExhausted):
			return false
		default:
			remaining := a.gate.AttemptsRemaining()
			plural := ""
			if remaining > 1 {
				plural = "s"
			}
			fmt.Printf("Incorrect credentials. %d attempt%s remaining.\n", remaining, plural)
		}
	}
}

// promptSecret reads a line without echo when stdin is a terminal, falling
// back to a plain line read otherwise.
func (a *app) promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if !a.scanner.Scan() {
		return "", errors.New("stdin closed")
	}
	return a.scanner.Text(), nil
}

// shell runs the catalog command loop. Returns "exit" when the user quits
// and "locked" when the inactivity timer expired.
func (a *app) shell() string {
	fmt.Println(`Type "help" for commands.`)
	for {
		if a.pollTimer() {
			return "locked"
		}
		fmt.Printf("passman [%s]> ", session.SecondsText(a.remaining))
		if !a.scanner.Scan() {
			return "exit"
		}
		// The timer may have expired while waiting for input; the typed
		// command is discarded in that case.
		if a.pollTimer() {
			return "locked"
		}
		a.timer.Restart()
		a.remaining = a.options.TimeoutSeconds

		args := strings.Fields(strings.TrimSpace(a.scanner.Text()))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			a.printHelp()
		case "list":
			a.printList()
		case "order":
			a.cmdOrder(args[1:])
		case "search":
			a.cmdSearch(args[1:])
		case "clear":
			a.projection.SetFilter(nil)
			a.printList()
		case "select":
			a.cmdSelect(args[1:])
		case "new":
			a.cmdNew()
		case "show":
			a.printRecord()
		case "edit":
			a.edit.BeginEdit()
			a.printRecord()
		case "set":
			a.cmdSet(args[1:])
		case "save":
			a.cmdSave()
		case "delete":
			a.cmdDelete(args[1:])
		case "generate":
			a.cmdGenerate(args[1:])
		case "lock":
			return "locked"
		case "exit":
			if a.confirmDiscard() {
				return "exit"
			}
		default:
			fmt.Println(`Unknown command. Type "help" for a list of commands.`)
		}
	}
}

// pollTimer drains pending timer events. Returns true once the countdown
// has expired.
func (a *app) pollTimer() bool {
	for {
		select {
		case r := <-a.timer.Ticks():
			a.remaining = r
		case <-a.timer.Expired():
			return true
		default:
			return false
		}
	}
}

func (a *app) printHelp() {
	fmt.Println(`Commands:
  list                     show the catalog
  order name|category|date switch the ordering mode
  search <text>            fuzzy-filter the catalog by account name
  clear                    clear the search filter
  select <name>            select an account and load it for viewing
  new                      create a new account and start editing it
  show                     show the loaded account
  edit                     make the loaded account's fields editable
  set <field> <value>      set name, username, password, category, or notes
  save                     save the edited account
  delete <name>            delete an account permanently
  generate [length]        generate a random password
  lock                     lock the session now
  exit                     quit`)
}

func (a *app) printList() {
	seq := a.projection.Render()
	switch seq.Empty {
	case vault.EmptyCatalog:
		fmt.Println("No Accounts")
		return
	case vault.EmptyNoMatches:
		fmt.Println("No Search Results")
		return
	}
	for _, row := range seq.Rows {
		if row.Separator {
			pad := 40 - len(row.Label)
			if pad < 1 {
				pad = 1
			}
			fmt.Printf("%s %s\n", row.Label, strings.Repeat("-", pad))
			continue
		}
		acct := row.Entry.Account
		marker := "  "
		if row.Entry.Selected {
			marker = "* "
		}
		fmt.Printf("%s%s  %s\n", marker, acct.Name, acct.CreatedDate)
		fmt.Printf("    %s\n", trimText(acct.Category+" - "+acct.Notes, 60))
	}
}

func (a *app) cmdOrder(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: order name|category|date")
		return
	}
	switch args[0] {
	case "name":
		a.projection.SetOrder(vault.OrderName)
	case "category":
		a.projection.SetOrder(vault.OrderCategory)
	case "date":
		a.projection.SetOrder(vault.OrderDate)
	default:
		fmt.Println("Usage: order name|category|date")
		return
	}
	a.printList()
}

func (a *app) cmdSearch(args []string) {
	text := strings.Join(args, " ")
	if text == "" {
		// An empty search means no filter, not an empty result view.
		a.projection.SetFilter(nil)
		a.printList()
		return
	}
	results := a.index.Query(text, 5, 0.25)
	if results == nil {
		results = []string{}
	}
	a.projection.SetFilter(results)
	a.printList()
}

func (a *app) cmdSelect(args []string) {
	name := strings.Join(args, " ")
	if name == "" {
		fmt.Println("Usage: select <name>")
		return
	}
	id, ok := a.store.IDByName(name)
	if !ok {
		fmt.Printf("No account named %q.\n", name)
		return
	}
	if !a.confirmDiscard() {
		return
	}
	a.selection.Select(id)
	if err := a.edit.Load(id); err != nil {
		fmt.Println(err)
		return
	}
	a.printRecord()
}

func (a *app) cmdNew() {
	if !a.confirmDiscard() {
		return
	}
	placeholder := models.Account{
		Name:        "New Account",
		Category:    models.CategoryOther,
		CreatedDate: time.Now().Format(models.DateLayout),
	}
	change, err := a.store.Add(placeholder)
	if err != nil {
		var dup *vault.DuplicateNameError
		if errors.As(err, &dup) {
			fmt.Println(`An account named "New Account" already exists. Rename or delete it first.`)
			return
		}
		var persist *vault.PersistError
		if !errors.As(err, &persist) {
			fmt.Println(err)
			return
		}
		fmt.Println("Warning: the catalog could not be saved to storage.")
	}
	a.index.SetCandidates(a.store.Names())
	a.selection.Select(change.ID)
	if err := a.edit.Load(change.ID); err != nil {
		fmt.Println(err)
		return
	}
	a.edit.BeginEdit()
	a.printRecord()
}

func (a *app) printRecord() {
	fields := a.edit.Fields()
	switch a.edit.State() {
	case vault.StateEmpty:
		fmt.Println("No Account Selected")
		return
	case vault.StateEditing:
		fmt.Println("[editing]")
	}
	fmt.Printf("  Account Name: %s\n", fields.Name)
	fmt.Printf("  Username:     %s\n", fields.Username)
	fmt.Printf("  Password:     %s\n", fields.Password)
	fmt.Printf("  Category:     %s\n", fields.Category)
	fmt.Printf("  Notes:        %s\n", fields.Notes)
}

func (a *app) cmdSet(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: set <name|username|password|category|notes> <value>")
		return
	}
	if a.edit.State() != vault.StateEditing {
		fmt.Println(`Not editing. Use "edit" first.`)
		return
	}
	value := strings.Join(args[1:], " ")
	switch args[0] {
	case "name":
		a.edit.SetName(value)
	case "username":
		a.edit.SetUsername(value)
	case "password":
		a.edit.SetPassword(value)
	case "category":
		a.edit.SetCategory(value)
	case "notes":
		a.edit.SetNotes(value)
	default:
		fmt.Println("Usage: set <name|username|password|category|notes> <value>")
	}
}

func (a *app) cmdSave() {
	_, err := a.edit.Commit()
	switch {
	case err == nil:
		a.index.SetCandidates(a.store.Names())
		fmt.Println("Saved.")
	case errors.Is(err, vault.ErrNotEditing):
		fmt.Println("Nothing to save.")
	default:
		var incomplete *vault.IncompleteFieldError
		var dup *vault.DuplicateNameError
		var persist *vault.PersistError
		switch {
		case errors.As(err, &incomplete):
			fmt.Printf("%s field is empty! You must complete all fields before saving.\n", incomplete.Field)
		case errors.As(err, &dup):
			fmt.Println(err)
		case errors.As(err, &persist):
			a.index.SetCandidates(a.store.Names())
			fmt.Println("Saved in memory, but the catalog could not be written to storage.")
		default:
			fmt.Println(err)
		}
	}
}

func (a *app) cmdDelete(args []string) {
	name := strings.Join(args, " ")
	if name == "" {
		fmt.Println("Usage: delete <name>")
		return
	}
	id, ok := a.store.IDByName(name)
	if !ok {
		fmt.Printf("No account named %q.\n", name)
		return
	}
	prompt := fmt.Sprintf("Are you sure you want to delete %q? You cannot undo this action.", name)
	if !a.confirm(prompt) {
		return
	}
	change, err := a.store.Remove(id)
	if err != nil {
		fmt.Println("Warning: the catalog could not be saved to storage.")
	}
	a.selection.Invalidate(change)
	a.edit.Invalidate(change)
	a.index.SetCandidates(a.store.Names())
	fmt.Println("Deleted.")
}

func (a *app) cmdGenerate(args []string) {
	opts := generate.DefaultOptions()
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Println("Usage: generate [length]")
			return
		}
		opts.MinLength, opts.MaxLength = n, n
	}
	password, err := generate.Password(opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(password)
}

// confirmDiscard guards destructive navigation when the edit session holds
// unsaved changes.
func (a *app) confirmDiscard() bool {
	if !a.edit.IsDirty() {
		return true
	}
	return a.confirm(unsavedMessage)
}

func (a *app) confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	if !a.scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(a.scanner.Text()))
	return answer == "y" || answer == "yes"
}

// trimText cuts text to maxLen characters, ellipsis included. Trimming
// counts runes so multibyte text is never cut mid-character.
func trimText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}
