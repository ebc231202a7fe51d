package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubSourceToHubQuery(t *testing.T) {
	entity := customerEntity()

	q, err := hubSourceToHubQuery(&entity)
	assert.NoError(t, err)
	assert.Equal(t,
		"SELECT CUSTOMER_ID, CUSTOMER_NAME, COUNTRY FROM RAW.CRM.CUSTOMERS WHERE IS_DELETED = FALSE "+
			"EXCEPT SELECT h.CUSTOMER_ID, CUSTOMER_NAME, COUNTRY FROM VAULT.H_CUSTOMER h "+
			"JOIN VAULT.S_CUSTOMER_CURRENT s ON h.HK_CUSTOMER = s.HK_CUSTOMER",
		q)
}

func TestHubSourceToHubQuery_NoSoftDelete(t *testing.T) {
	entity := customerEntity()
	entity.DeletedColumn = ""
	entity.ColumnsToCompare = nil

	q, err := hubSourceToHubQuery(&entity)
	assert.NoError(t, err)
	assert.Equal(t,
		"SELECT CUSTOMER_ID FROM RAW.CRM.CUSTOMERS "+
			"EXCEPT SELECT h.CUSTOMER_ID FROM VAULT.H_CUSTOMER h "+
			"JOIN VAULT.S_CUSTOMER_CURRENT s ON h.HK_CUSTOMER = s.HK_CUSTOMER",
		q)
}

func TestHubToSatelliteQuery(t *testing.T) {
	entity := customerEntity()

	q, err := hubToSatelliteQuery(&entity)
	assert.NoError(t, err)
	assert.Equal(t,
		"SELECT HK_CUSTOMER FROM VAULT.H_CUSTOMER EXCEPT SELECT HK_CUSTOMER FROM VAULT.S_CUSTOMER_CURRENT",
		q)
}

func TestHubSatelliteToBizviewQuery(t *testing.T) {
	entity := customerEntity()

	q, err := hubSatelliteToBizviewQuery(&entity)
	assert.NoError(t, err)
	assert.Equal(t,
		"SELECT h.CUSTOMER_ID FROM VAULT.S_CUSTOMER_CURRENT s JOIN VAULT.H_CUSTOMER h ON s.HK_CUSTOMER = h.HK_CUSTOMER "+
			"EXCEPT SELECT CUSTOMER_ID FROM BIZ.V_CUSTOMER",
		q)
}

func TestLinkQueries(t *testing.T) {
	entity := orderItemLink()

	q, err := linkSourceToHubQuery(&entity, 0)
	assert.NoError(t, err)
	assert.Equal(t, "SELECT ORDER_ID FROM RAW.SALES.ORDER_ITEMS EXCEPT SELECT ORDER_ID FROM VAULT.H_ORDER", q)

	q, err = linkSourceToHubQuery(&entity, 1)
	assert.NoError(t, err)
	assert.Equal(t, "SELECT PRODUCT_ID FROM RAW.SALES.ORDER_ITEMS EXCEPT SELECT PRODUCT_ID FROM VAULT.H_PRODUCT", q)

	q, err = linkHubToLinkQuery(&entity, 1)
	assert.NoError(t, err)
	assert.Equal(t, "SELECT HK_PRODUCT FROM VAULT.H_PRODUCT EXCEPT SELECT HK_PRODUCT FROM VAULT.L_ORDER_PRODUCT", q)

	q, err = linkToSatelliteQuery(&entity)
	assert.NoError(t, err)
	assert.Equal(t, "SELECT HK_ORDER_PRODUCT FROM VAULT.L_ORDER_PRODUCT EXCEPT SELECT HK_ORDER_PRODUCT FROM VAULT.S_ORDER_PRODUCT_CURRENT", q)

	q, err = linkSatelliteToBizviewQuery(&entity)
	assert.NoError(t, err)
	assert.Equal(t, "SELECT HK_ORDER_PRODUCT FROM VAULT.S_ORDER_PRODUCT_CURRENT EXCEPT SELECT HK_ORDER_PRODUCT FROM BIZ.V_ORDER_ITEMS", q)
}

func TestLinkSourceToHubQuery_SoftDelete(t *testing.T) {
	entity := orderItemLink()
	entity.DeletedColumn = "IS_DELETED"

	q, err := linkSourceToHubQuery(&entity, 0)
	assert.NoError(t, err)
	assert.Equal(t,
		"SELECT ORDER_ID FROM RAW.SALES.ORDER_ITEMS WHERE IS_DELETED = FALSE EXCEPT SELECT ORDER_ID FROM VAULT.H_ORDER",
		q)
}

func TestCountQueries(t *testing.T) {
	entity := customerEntity()

	assert.Equal(t, "SELECT COUNT(*) FROM VAULT.H_CUSTOMER", countQuery("VAULT.H_CUSTOMER"))
	assert.Equal(t, "SELECT COUNT(*) FROM RAW.CRM.CUSTOMERS WHERE IS_DELETED = FALSE", sourceCountQuery(&entity))
	assert.Equal(t, "SELECT COUNT(*) FROM RAW.CRM.CUSTOMERS WHERE IS_DELETED = TRUE", deletedCountQuery(&entity))

	entity.DeletedColumn = ""
	assert.Equal(t, "SELECT COUNT(*) FROM RAW.CRM.CUSTOMERS", sourceCountQuery(&entity))
}

func TestQueryWraps(t *testing.T) {
	diff := "SELECT A FROM X EXCEPT SELECT A FROM Y"

	assert.Equal(t, "SELECT COUNT(*) FROM (SELECT A FROM X EXCEPT SELECT A FROM Y) AS diff", countWrap(diff))
	assert.Equal(t, "SELECT * FROM (SELECT A FROM X EXCEPT SELECT A FROM Y) AS sample LIMIT 25", limitWrap(diff, 25))
}

func TestExceptQuery_SchemaMismatch(t *testing.T) {
	_, err := exceptQuery("CUSTOMERS", TransitionSourceToHub,
		[]string{"A", "B"}, "X",
		[]string{"A"}, "Y")

	var mismatch *SchemaMismatchError
	assert.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "CUSTOMERS", mismatch.Entity)
	assert.Equal(t, TransitionSourceToHub, mismatch.Transition)
	assert.Equal(t, 2, mismatch.UpstreamCols)
	assert.Equal(t, 1, mismatch.DownstreamCols)
	assert.Contains(t, err.Error(), "upstream projects 2 columns, downstream 1")
}
