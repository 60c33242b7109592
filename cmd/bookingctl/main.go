// bookingctl runs one booking workflow operation against the backend and
// prints the resulting view.
//
//	bookingctl search --origin DEL --destination BOM
//	bookingctl book --flight-id 7 --name "Asha Rao" --email asha@example.com --fare 4500
//	bookingctl quick-book --flight-id 7 --fare 4500
//	bookingctl lookup --pnr PNR123
//	bookingctl cancel --pnr PNR123 [--yes]
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/ijalalfrz/flight-booking-client/internal/app/config"
	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-client/internal/app/service"
	"github.com/ijalalfrz/flight-booking-client/internal/app/view"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/bookingapi"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/logger"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/utils"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var (
	errUsage       = errors.New("usage: bookingctl <search|book|quick-book|lookup|cancel> [flags]")
	errNeedConfirm = errors.New("stdin is not a terminal; pass --yes to confirm the cancellation")
)

// exitError carries a non-zero status for an operation that ended with a
// warning or failure notice. The notice itself has already been printed.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitError) ExitCode() int { return int(e) }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tty := &console{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}

	if err := run(ctx, os.Args[1:], tty, os.Getenv); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

// console is the terminal the command talks to.
type console struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// ask prints question and reads one line. ok is false at end of input.
func (c *console) ask(question string) (string, bool) {
	fmt.Fprint(c.out, question+" ")

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		return "", false
	}

	return strings.TrimSpace(line), true
}

type globalFlags struct {
	apiURL   string
	asJSON   bool
	logLevel string
}

func (g *globalFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&g.apiURL, "api", "", "backend base URL (default: API_BASE_URL)")
	flagSet.BoolVar(&g.asJSON, "json", false, "print the resulting view as JSON")
	flagSet.StringVar(&g.logLevel, "log-level", "warn", "log level written to stderr")
}

func run(ctx context.Context, args []string, tty *console, getenv func(string) string) error {
	if len(args) == 0 {
		return errUsage
	}

	command, args := args[0], args[1:]

	var globals globalFlags
	flagSet := pflag.NewFlagSet("bookingctl "+command, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	globals.register(flagSet)

	var execute func(context.Context, *service.BookingWorkflow) (interface{}, error)

	switch command {
	case "search":
		var query dto.SearchQuery
		flagSet.StringVar(&query.Origin, "origin", "", "origin airport code")
		flagSet.StringVar(&query.Destination, "destination", "", "destination airport code")
		execute = func(ctx context.Context, workflow *service.BookingWorkflow) (interface{}, error) {
			state := view.SearchView{Query: query, Status: view.SearchIdle}
			workflow.Search(ctx, &state)
			return state, nil
		}
	case "book":
		var form dto.BookingForm
		flagSet.StringVar(&form.FlightID, "flight-id", "", "flight id")
		flagSet.StringVar(&form.PassengerName, "name", "", "passenger name")
		flagSet.StringVar(&form.Email, "email", "", "passenger email")
		flagSet.StringVar(&form.Fare, "fare", "", "fare shown on the search result")
		execute = func(ctx context.Context, workflow *service.BookingWorkflow) (interface{}, error) {
			state := view.BookingView{Form: form}
			workflow.SubmitBooking(ctx, &state)
			return state, nil
		}
	case "quick-book":
		var params dto.HandoffParams
		flagSet.StringVar(&params.FlightID, "flight-id", "", "flight id")
		flagSet.StringVar(&params.Fare, "fare", "", "fare shown on the search result")
		execute = func(ctx context.Context, workflow *service.BookingWorkflow) (interface{}, error) {
			dialog := workflow.StartQuickBook(params.FlightID, params.Fare)
			for dialog.Open() {
				answer, ok := tty.ask(dialog.Prompt())
				workflow.AdvanceQuickBook(ctx, &dialog, answer, !ok)
			}
			return dialog, nil
		}
	case "lookup":
		var pnr string
		flagSet.StringVar(&pnr, "pnr", "", "booking confirmation code")
		execute = func(ctx context.Context, workflow *service.BookingWorkflow) (interface{}, error) {
			state := view.LookupView{PNR: pnr}
			workflow.ViewBooking(ctx, &state)
			return state, nil
		}
	case "cancel":
		var (
			pnr string
			yes bool
		)
		flagSet.StringVar(&pnr, "pnr", "", "booking confirmation code")
		flagSet.BoolVarP(&yes, "yes", "y", false, "cancel without asking")
		execute = func(ctx context.Context, workflow *service.BookingWorkflow) (interface{}, error) {
			confirmer, err := tty.confirmer(yes)
			if err != nil {
				return nil, err
			}

			state := view.LookupView{PNR: pnr}
			workflow.CancelBooking(ctx, &state, confirmer)
			return state, nil
		}
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}

	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}

	if extra := flagSet.Args(); len(extra) > 0 {
		return fmt.Errorf("%s: unexpected argument %q", command, extra[0])
	}

	logger.InitStructuredLoggerTo(os.Stderr, config.LogLeveler(globals.logLevel))

	workflow, err := newWorkflow(utils.FirstNonEmpty(globals.apiURL, getenv("API_BASE_URL"), defaultAPIBaseURL))
	if err != nil {
		return err
	}

	result, err := execute(ctx, workflow)
	if err != nil {
		return err
	}

	if globals.asJSON {
		encoder := json.NewEncoder(tty.out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		printView(tty.out, result)
	}

	if failed(result) {
		return exitError(1)
	}

	return nil
}

const defaultAPIBaseURL = "http://127.0.0.1:8000"

func newWorkflow(rawURL string) (*service.BookingWorkflow, error) {
	apiBase, err := config.API{BaseURL: rawURL}.URL()
	if err != nil {
		return nil, err
	}

	if err := dto.InitValidator(); err != nil {
		return nil, fmt.Errorf("init validator: %w", err)
	}

	api, err := bookingapi.NewClient(bookingapi.Config{BaseURL: apiBase})
	if err != nil {
		return nil, fmt.Errorf("init booking api client: %w", err)
	}

	// one command per process, so there is never a second trigger to guard against
	return service.NewBookingWorkflow(api, nil, 0), nil
}

// confirmer asks on the terminal, or accepts outright with --yes.
func (c *console) confirmer(yes bool) (service.Confirmer, error) {
	if yes {
		return service.Answer(true), nil
	}

	if !c.interactive {
		return nil, errNeedConfirm
	}

	return service.ConfirmFunc(func(_ context.Context, question string) (bool, error) {
		answer, ok := c.ask(question + " [y/N]")
		if !ok {
			return false, nil
		}

		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes", nil
	}), nil
}

// failed reports whether the view ended on a warning or danger notice.
func failed(result interface{}) bool {
	var notice *view.Notice

	switch v := result.(type) {
	case view.SearchView:
		notice = v.Notice
	case view.BookingView:
		notice = v.Notice
	case view.QuickBookDialog:
		notice = v.Notice
	case view.LookupView:
		notice = v.Notice
	}

	return notice != nil && (notice.Level == view.LevelWarning || notice.Level == view.LevelDanger)
}
