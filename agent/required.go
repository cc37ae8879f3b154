package agent

import (
	"context"
	"fmt"

	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/patch"
	"github.com/tbxark/locationagent/types"
)

type requiredFieldsState struct {
	Location *types.Location          `json:"location"`
	Fields   types.AddressRequirement `json:"fields"`
	Current  types.AddressField       `json:"current"`
}

// requiredFieldsDialog prompts for each missing required address field in turn.
type requiredFieldsDialog struct {
	flow *LocationFlow
}

func (d *requiredFieldsDialog) ID() string {
	return dialogRequiredFields
}

func (d *requiredFieldsDialog) Begin(ctx context.Context, dc *dialogContext, args any) error {
	a, _ := args.(requiredFieldsArgs)
	state := requiredFieldsState{
		Location: a.Location.Clone(),
		Fields:   a.Fields,
	}
	if state.Location == nil {
		state.Location = &types.Location{}
	}
	return d.next(dc, &state)
}

func (d *requiredFieldsDialog) next(dc *dialogContext, state *requiredFieldsState) error {
	missing := state.Location.MissingFields(state.Fields)
	if missing == 0 {
		dc.Done(state.Location)
		return nil
	}
	state.Current = missing.Fields()[0]
	if err := dc.Save(state); err != nil {
		return err
	}
	dc.Send(types.TextMessage(d.flow.strings.AskForField(state.Current)))
	return nil
}

func (d *requiredFieldsDialog) Continue(ctx context.Context, dc *dialogContext, input types.Input) error {
	var state requiredFieldsState
	if err := dc.Load(&state); err != nil {
		return err
	}
	value := input.Trimmed()
	if value == "" {
		dc.Send(types.TextMessage(d.flow.strings.AskForField(state.Current)))
		return nil
	}
	loc, err := writeAddressField(state.Location, state.Current, value, d.flow.strings.AddressSeparator)
	if err != nil {
		return err
	}
	state.Location = loc
	return d.next(dc, &state)
}

func (d *requiredFieldsDialog) Resume(ctx context.Context, dc *dialogContext, target string, result dialog.Result) error {
	return fmt.Errorf("required fields dialog has no children, got target %q", target)
}

var writablePaths = func() map[string]bool {
	paths := make(map[string]bool, len(types.AllAddressFields))
	for _, field := range types.AllAddressFields {
		paths[field.JSONPointer()] = true
	}
	return paths
}()

// writeAddressField sets one field and recomputes the formatted address from the parts.
func writeAddressField(loc *types.Location, field types.AddressField, value, separator string) (*types.Location, error) {
	ops := []patch.Operation{patch.Set(field.JSONPointer(), value)}
	if err := patch.ValidatePatchOperations(ops, writablePaths); err != nil {
		return nil, err
	}
	updated, err := patch.ApplyRFC6902(*loc, ops)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", field, err)
	}
	formatted := updated.Address.Compose(separator)
	updated, err = patch.ApplyRFC6902(updated, []patch.Operation{patch.Set("/address/formatted_address", formatted)})
	if err != nil {
		return nil, fmt.Errorf("failed to write formatted address: %w", err)
	}
	return &updated, nil
}
