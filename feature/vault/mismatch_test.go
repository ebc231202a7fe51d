package vault

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"vault-reconciler/core/warehouse"

	"github.com/stretchr/testify/assert"
)

func TestMismatchFinder_Find(t *testing.T) {
	fe := newFakeExecutor()
	entity := customerEntity()
	diff := "SELECT CUSTOMER_ID FROM X EXCEPT SELECT CUSTOMER_ID FROM Y"

	fe.results[countWrap(diff)] = countResult(2)
	fe.results[limitWrap(diff, 10)] = &warehouse.Result{
		Columns: []string{"CUSTOMER_ID"},
		Rows: []map[string]any{
			{"CUSTOMER_ID": "CUST-0007"},
			{"CUSTOMER_ID": "CUST-0031"},
		},
	}

	finder := NewMismatchFinder(fe, 0, 10, "run-42")
	mm, err := finder.Find(context.Background(), &entity, TransitionSourceToHub, entity.HubTable, diff)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), mm.Count)
	assert.Len(t, mm.Records, 2)

	rec := mm.Records[0]
	assert.Equal(t, "CUST-0007", rec["CUSTOMER_ID"])
	assert.Equal(t, true, rec["__record_separator"])

	meta := rec["__metadata"].(map[string]any)
	assert.Equal(t, "RAW.CRM.CUSTOMERS", meta["source_table"])
	assert.Equal(t, "VAULT.H_CUSTOMER", meta["hub_table"])
	assert.Equal(t, "VAULT.S_CUSTOMER_CURRENT", meta["satellite_table"])
	assert.Equal(t, "BIZ.V_CUSTOMER", meta["bizview_table"])
	assert.Equal(t, "missing", meta["record_type"])
	assert.Equal(t, "source_to_hub", meta["layer"])
	assert.Equal(t, "run-42", meta["run_id"])
	assert.NotEmpty(t, meta["captured_at"])
}

func TestMismatchFinder_Find_CapExceeded(t *testing.T) {
	fe := newFakeExecutor()
	entity := customerEntity()
	diff := "SELECT CUSTOMER_ID FROM X EXCEPT SELECT CUSTOMER_ID FROM Y"

	fe.results[countWrap(diff)] = countResult(25)
	fe.results[limitWrap(diff, 10)] = &warehouse.Result{
		Columns: []string{"CUSTOMER_ID"},
		Rows: []map[string]any{
			{"CUSTOMER_ID": "CUST-0007"},
			{"CUSTOMER_ID": "CUST-0031"},
		},
	}

	finder := NewMismatchFinder(fe, 0, 10, "run-42")
	mm, err := finder.Find(context.Background(), &entity, TransitionSourceToHub, entity.HubTable, diff)
	assert.NoError(t, err)
	assert.Equal(t, int64(25), mm.Count)
	assert.Len(t, mm.Records, 3)

	note := mm.Records[2]
	assert.Equal(t, "Showing 10 of 25 total missing records", note["NOTE"])
	assert.Equal(t, "RAW.CRM.CUSTOMERS", note["source_table"])
	assert.Equal(t, "VAULT.H_CUSTOMER", note["hub_table"])
	assert.NotContains(t, note, "__record_separator")
}

func TestMismatchFinder_Find_NoMismatches(t *testing.T) {
	fe := newFakeExecutor()
	entity := customerEntity()
	diff := "SELECT CUSTOMER_ID FROM X EXCEPT SELECT CUSTOMER_ID FROM Y"

	fe.results[countWrap(diff)] = countResult(0)
	fe.results[limitWrap(diff, 10)] = &warehouse.Result{Columns: []string{"CUSTOMER_ID"}, Rows: []map[string]any{}}

	finder := NewMismatchFinder(fe, 0, 10, "run-42")
	mm, err := finder.Find(context.Background(), &entity, TransitionSourceToHub, entity.HubTable, diff)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), mm.Count)
	assert.Empty(t, mm.Records)
}

func TestMismatchFinder_Find_TrimsQuery(t *testing.T) {
	fe := newFakeExecutor()
	entity := customerEntity()
	diff := "SELECT CUSTOMER_ID FROM X EXCEPT SELECT CUSTOMER_ID FROM Y"

	fe.results[countWrap(diff)] = countResult(0)
	fe.results[limitWrap(diff, 10)] = &warehouse.Result{Columns: []string{"CUSTOMER_ID"}, Rows: []map[string]any{}}

	finder := NewMismatchFinder(fe, 0, 10, "run-42")
	_, err := finder.Find(context.Background(), &entity, TransitionSourceToHub, entity.HubTable, "\n  "+diff+"  \n")
	assert.NoError(t, err)
	assert.True(t, slices.Contains(fe.recorded(), countWrap(diff)))
}

func TestMismatchFinder_Find_CountError(t *testing.T) {
	fe := newFakeExecutor()
	entity := customerEntity()
	diff := "SELECT CUSTOMER_ID FROM X EXCEPT SELECT CUSTOMER_ID FROM Y"
	fe.errs[countWrap(diff)] = fmt.Errorf("table X does not exist")

	finder := NewMismatchFinder(fe, 0, 10, "run-42")
	_, err := finder.Find(context.Background(), &entity, TransitionSourceToHub, entity.HubTable, diff)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "table X does not exist")
}
