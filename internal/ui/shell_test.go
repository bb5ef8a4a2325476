package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func runShell(t *testing.T, api *fakeAPI, input string) (*Shell, string) {
	t.Helper()

	var out bytes.Buffer
	shell := NewShell(newTestController(api), strings.NewReader(input), &out)
	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected error = %v", err)
	}
	return shell, out.String()
}

func TestShell_Session(t *testing.T) {
	api := newFakeAPI()
	input := strings.Join([]string{
		"add Blue Widget 9.99",
		"add Gadget 5",
		"edit 1",
		"set price 12.50",
		"save",
		"rm 2",
		"quit",
		"add Never 1",
	}, "\n")

	shell, out := runShell(t, api, input)

	s := shell.State()
	if len(s.Products) != 1 {
		t.Fatalf("expected 1 product, got %+v", s.Products)
	}
	if s.Products[0].Name != "Blue Widget" || s.Products[0].Price.String() != "12.5" {
		t.Errorf("unexpected product %+v", s.Products[0])
	}
	if s.Editing() {
		t.Error("expected edit mode to end after save")
	}
	if !strings.Contains(out, "Blue Widget") || !strings.Contains(out, "12.50") {
		t.Errorf("expected rendered table, got:\n%s", out)
	}
	if strings.Contains(out, "Never") {
		t.Error("expected commands after quit to be ignored")
	}
}

func TestShell_ErrorsKeepRunning(t *testing.T) {
	api := newFakeAPI(sampleProducts()...)
	input := strings.Join([]string{
		"bogus",
		"rm 99",
		"rm abc",
		"edit 42",
		"set name Nope",
		"add Widget",
		"refresh",
	}, "\n")

	shell, out := runShell(t, api, input)

	for _, want := range []string{
		`unknown command "bogus"`,
		"product not found",
		`invalid id "abc"`,
		"product 42 is not in the list",
		"no product is being edited",
		"usage: add <name> <price>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if len(shell.State().Products) != 2 {
		t.Errorf("expected the list to be intact, got %+v", shell.State().Products)
	}
}

func TestShell_EditMarksRowAndCancel(t *testing.T) {
	api := newFakeAPI(sampleProducts()...)

	shell, out := runShell(t, api, "edit 2\nset name Renamed\ncancel\n")

	if !strings.Contains(out, "Renamed") || !strings.Contains(out, "editing 2") {
		t.Errorf("expected the edited row to be marked, got:\n%s", out)
	}
	if shell.State().Editing() {
		t.Error("expected cancel to leave edit mode")
	}
	if api.products[2].Name != "Gadget" {
		t.Error("cancel must not call the API")
	}
}
