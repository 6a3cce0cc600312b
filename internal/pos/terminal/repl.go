// Package terminal is the line-oriented cashier front end: one command per
// line, dispatched to a session.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jcmexdev/grocery-pos/internal/pos/catalog"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/pos/session"
	"github.com/jcmexdev/grocery-pos/internal/pos/view"
)

const prompt = "> "

const helpText = `Commands:
  products               list products matching the current filters
  type <text>            filter products by name or code (applied after typing pauses)
  category [name|all]    filter by category, or list categories
  scan <query>           search the backend; a single match goes into the cart
  add <id>               add one unit of a product
  inc <id> / dec <id>    change a line's quantity by one
  rm <id>                remove a line
  clear                  empty the cart (asks first)
  cart                   show the cart
  discount <percent>     set the discount (0-100)
  customer [id]          select a customer, or none for walk-in
  pay <method>           cash, card, upi or credit
  checkout               complete the sale
  reprint <id>           show an issued invoice again
  print [file]           save the last invoice as a printable HTML page
  help                   show this text
  quit                   leave
`

type REPL struct {
	sess    *session.Session
	out     io.Writer
	baseURL string
	create  func(name string) (io.WriteCloser, error)
}

// New returns a REPL writing to out. baseURL is used for invoice links.
func New(sess *session.Session, out io.Writer, baseURL string) *REPL {
	return &REPL{
		sess:    sess,
		out:     out,
		baseURL: baseURL,
		create: func(name string) (io.WriteCloser, error) {
			return os.Create(name)
		},
	}
}

// Run reads commands from in until quit, EOF or ctx is done. Cancelling ctx
// returns at once even while a read is blocked.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	input := readLines(in)
	defer input.stop()

	next := func() (string, bool) {
		select {
		case <-ctx.Done():
			return "", false
		case line, ok := <-input.lines:
			return line, ok
		}
	}
	confirm := func() bool {
		fmt.Fprint(r.out, "Are you sure you want to clear the cart? [y/N] ")
		line, ok := next()
		if !ok {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}

	fmt.Fprint(r.out, prompt)
	for {
		line, ok := next()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !ok {
			break
		}
		if quit := r.Exec(ctx, line, confirm); quit {
			return nil
		}
		fmt.Fprint(r.out, prompt)
	}
	if input.err != nil {
		return fmt.Errorf("terminal: read input: %w", input.err)
	}
	return nil
}

// lineReader scans its input on its own goroutine. lines closes at EOF or on
// a read error; err is set before the close. A read that never returns keeps
// the goroutine parked until the process exits.
type lineReader struct {
	lines <-chan string
	done  chan struct{}
	err   error
}

func readLines(in io.Reader) *lineReader {
	lines := make(chan string)
	lr := &lineReader{lines: lines, done: make(chan struct{})}
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-lr.done:
				return
			}
		}
		lr.err = scanner.Err()
	}()
	return lr
}

func (lr *lineReader) stop() {
	close(lr.done)
}

// Exec runs one command line and reports whether the user asked to quit.
func (r *REPL) Exec(ctx context.Context, line string, confirm func() bool) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(r.out, helpText)
	case "products":
		view.WriteProducts(r.out, r.sess.VisibleProducts())
	case "type":
		r.sess.TypeSearch(arg)
	case "category":
		if arg == "" {
			fmt.Fprintf(r.out, "Categories: %s, %s\n", catalog.AllCategories, strings.Join(r.sess.Categories(), ", "))
			return false
		}
		r.sess.SelectCategory(arg)
	case "scan":
		if err := r.sess.SearchAndAdd(ctx, arg); err != nil {
			slog.ErrorContext(ctx, "product search failed", "query", arg, "error", err)
		}
	case "add":
		r.withID(cmd, arg, func(id int64) { _ = r.sess.AddByID(id) })
	case "inc":
		r.withID(cmd, arg, func(id int64) { _ = r.sess.Adjust(id, 1) })
	case "dec":
		r.withID(cmd, arg, func(id int64) { _ = r.sess.Adjust(id, -1) })
	case "rm":
		r.withID(cmd, arg, r.sess.Remove)
	case "clear":
		r.sess.ClearCart(confirm)
	case "cart":
		r.sess.Render()
	case "discount":
		r.sess.SetDiscount(arg)
	case "customer":
		r.sess.SetCustomer(arg)
	case "pay":
		_ = r.sess.SetPaymentMethod(arg)
	case "checkout":
		_, _ = r.sess.Checkout(ctx)
	case "reprint":
		r.withID(cmd, arg, func(id int64) {
			if _, err := r.sess.Reprint(ctx, id); err != nil {
				slog.WarnContext(ctx, "reprint failed", "invoice_id", id, "error", err)
			}
		})
	case "print":
		r.print(arg)
	default:
		fmt.Fprintf(r.out, "Unknown command %q, type help\n", cmd)
	}
	return false
}

func (r *REPL) withID(cmd, arg string, fn func(int64)) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "usage: %s <id>\n", cmd)
		return
	}
	fn(id)
}

func (r *REPL) print(name string) {
	inv := r.sess.LastInvoice()
	if inv == nil {
		fmt.Fprintln(r.out, "No invoice to print")
		return
	}
	if name == "" {
		name = printableName(inv)
	}

	f, err := r.create(name)
	if err != nil {
		fmt.Fprintf(r.out, "Cannot write %s: %v\n", name, err)
		return
	}
	defer f.Close()

	if err := view.RenderPrintable(f, inv, r.baseURL); err != nil {
		fmt.Fprintf(r.out, "Cannot write %s: %v\n", name, err)
		return
	}
	fmt.Fprintf(r.out, "Saved %s\n", name)
}

func printableName(inv *entity.Invoice) string {
	return "receipt-" + inv.InvoiceNumber + ".html"
}
