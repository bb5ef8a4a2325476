package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

const helpText = `Commands:
  add <name> <price>   create a product
  edit <id>            edit a row
  set name <value>     change the name being edited
  set price <value>    change the price being edited
  save                 save the row being edited
  cancel               leave edit mode
  rm <id>              delete a product
  refresh              reload the list
  help                 show this help
  quit                 exit
`

// Shell is a line-oriented front end over Controller.
type Shell struct {
	controller *Controller
	in         io.Reader
	out        io.Writer
	state      State
}

func NewShell(controller *Controller, in io.Reader, out io.Writer) *Shell {
	return &Shell{controller: controller, in: in, out: out}
}

// State returns the current view state.
func (s *Shell) State() State {
	return s.state
}

// Run loads the list once and then executes commands until quit, EOF or
// context cancellation. Command errors are printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.applyAndRender(ctx, s.controller.Load); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := s.execute(ctx, strings.Fields(scanner.Text()))
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (s *Shell) execute(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	switch args[0] {
	case "quit", "exit":
		return true, nil

	case "help":
		fmt.Fprint(s.out, helpText)
		return false, nil

	case "refresh":
		return false, s.applyAndRender(ctx, s.controller.Load)

	case "add":
		if len(args) < 3 {
			return false, fmt.Errorf("usage: add <name> <price>")
		}
		s.state = s.state.WithNewForm(ProductForm{
			Name:  strings.Join(args[1:len(args)-1], " "),
			Price: args[len(args)-1],
		})
		return false, s.applyAndRender(ctx, s.controller.SubmitCreate)

	case "edit":
		id, err := parseID(args)
		if err != nil {
			return false, err
		}
		next := s.state.StartEdit(id)
		if next.EditingID != id {
			return false, fmt.Errorf("product %d is not in the list", id)
		}
		s.state = next
		s.render()
		return false, nil

	case "set":
		if !s.state.Editing() {
			return false, ErrNotEditing
		}
		if len(args) < 3 {
			return false, fmt.Errorf("usage: set name|price <value>")
		}
		form := s.state.EditForm
		value := strings.Join(args[2:], " ")
		switch args[1] {
		case "name":
			form.Name = value
		case "price":
			form.Price = value
		default:
			return false, fmt.Errorf("unknown field %q", args[1])
		}
		s.state = s.state.WithEditForm(form)
		s.render()
		return false, nil

	case "save":
		return false, s.applyAndRender(ctx, s.controller.SubmitUpdate)

	case "cancel":
		s.state = s.state.CancelEdit()
		s.render()
		return false, nil

	case "rm":
		id, err := parseID(args)
		if err != nil {
			return false, err
		}
		return false, s.applyAndRender(ctx, func(ctx context.Context, st State) (State, error) {
			return s.controller.Remove(ctx, st, id)
		})

	default:
		return false, fmt.Errorf("unknown command %q, type help", args[0])
	}
}

func (s *Shell) applyAndRender(ctx context.Context, op func(context.Context, State) (State, error)) error {
	next, err := op(ctx, s.state)
	s.state = next
	s.render()
	return err
}

func (s *Shell) render() {
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tPRICE")
	for _, p := range s.state.Products {
		if p.ID == s.state.EditingID {
			fmt.Fprintf(tw, "*\t%d\t%s\t%s\n", p.ID, s.state.EditForm.Name, s.state.EditForm.Price)
			continue
		}
		fmt.Fprintf(tw, "\t%d\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2))
	}
	tw.Flush()

	if len(s.state.Products) == 0 {
		fmt.Fprintln(s.out, "(no products)")
	}
	if s.state.Editing() {
		fmt.Fprintf(s.out, "editing %d: set name|price <value>, save or cancel\n", s.state.EditingID)
	}
}

func parseID(args []string) (int64, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("usage: %s <id>", args[0])
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[1])
	}
	return id, nil
}
