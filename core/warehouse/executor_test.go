package warehouse

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM connection backed by sqlmock.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestMySQLExecutor_Execute(t *testing.T) {
	db, mock := setupMockDB(t)
	exec := &mysqlExecutor{db: db}

	rows := sqlmock.NewRows([]string{"customer_key", "load_date"}).
		AddRow([]byte("CUST-001"), "2024-03-01").
		AddRow([]byte("CUST-002"), nil)
	mock.ExpectQuery("SELECT customer_key, load_date FROM dv.hub_customer").WillReturnRows(rows)

	result, err := exec.Execute(context.Background(), "SELECT customer_key, load_date FROM dv.hub_customer")
	assert.NoError(t, err)

	assert.Equal(t, []string{"customer_key", "load_date"}, result.Columns)
	assert.Len(t, result.Rows, 2)
	assert.Equal(t, "CUST-001", result.Rows[0]["customer_key"], "Byte slices should convert to strings")
	assert.Equal(t, "2024-03-01", result.Rows[0]["load_date"])
	assert.Nil(t, result.Rows[1]["load_date"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLExecutor_Execute_Scalar(t *testing.T) {
	db, mock := setupMockDB(t)
	exec := &mysqlExecutor{db: db}

	rows := sqlmock.NewRows([]string{"cnt"}).AddRow(int64(1042))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) AS cnt FROM source.customers").WillReturnRows(rows)

	result, err := exec.Execute(context.Background(), "SELECT COUNT(*) AS cnt FROM source.customers")
	assert.NoError(t, err)
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, int64(1042), result.Rows[0]["cnt"])
}

func TestMySQLExecutor_Execute_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	exec := &mysqlExecutor{db: db}

	mock.ExpectQuery("SELECT customer_key FROM dv.hub_customer").
		WillReturnError(errors.New("Table 'dv.hub_customer' doesn't exist"))

	result, err := exec.Execute(context.Background(), "SELECT customer_key FROM dv.hub_customer")
	assert.Error(t, err)
	assert.Nil(t, result)

	var qErr *QueryError
	assert.ErrorAs(t, err, &qErr)
	assert.Equal(t, "SELECT customer_key FROM dv.hub_customer", qErr.Query)
	assert.Contains(t, err.Error(), "doesn't exist")
}

func TestQueryError_TruncatesLongQueries(t *testing.T) {
	longQuery := "SELECT " + strings.Repeat("customer_key, ", 40) + "load_date FROM dv.hub_customer"
	err := &QueryError{Query: longQuery, Err: errors.New("syntax error")}

	msg := err.Error()
	assert.Contains(t, msg, "syntax error")
	assert.Contains(t, msg, "...")
	assert.True(t, len(msg) < len(longQuery), "Message should not carry the full query")
}

func TestNewExecutor_UnsupportedDriver(t *testing.T) {
	exec, err := NewExecutor(context.Background(), Config{Driver: "oracle"})
	assert.Error(t, err)
	assert.Nil(t, exec)
	assert.Contains(t, err.Error(), "unsupported warehouse driver")
}

func TestNewExecutor_InvalidConnection(t *testing.T) {
	cfg := Config{
		Driver:         "mysql",
		Host:           "localhost",
		Port:           9999, // Unused port
		User:           "root",
		Password:       "wrongpassword",
		Name:           "vault",
		TimeoutSeconds: 2,
	}

	exec, err := NewExecutor(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, exec)
}

// fakeColumnType implements driver.ColumnType for scan target tests. Only
// ScanType is consulted.
type fakeColumnType struct {
	driver.ColumnType
	scanType reflect.Type
}

func (f fakeColumnType) ScanType() reflect.Type { return f.scanType }

// fakeRows feeds canned values through the driver.Rows surface Execute uses.
type fakeRows struct {
	driver.Rows
	columns []string
	types   []driver.ColumnType
	data    [][]any
	idx     int
}

func (r *fakeRows) Columns() []string                { return r.columns }
func (r *fakeRows) ColumnTypes() []driver.ColumnType { return r.types }
func (r *fakeRows) Next() bool                       { r.idx++; return r.idx <= len(r.data) }
func (r *fakeRows) Close() error                     { return nil }
func (r *fakeRows) Err() error                       { return nil }

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	for i, d := range dest {
		if row[i] == nil {
			continue
		}
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

// fakeConn implements the minimal driver.Conn surface needed for Query.
type fakeConn struct {
	driver.Conn
	rows driver.Rows
	err  error
}

func (c *fakeConn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	return c.rows, c.err
}

func TestClickHouseExecutor_Execute_NullableColumns(t *testing.T) {
	region := "emea"
	rows := &fakeRows{
		columns: []string{"customer_key", "region"},
		types: []driver.ColumnType{
			fakeColumnType{scanType: reflect.TypeOf("")},
			fakeColumnType{scanType: reflect.TypeOf((*string)(nil))},
		},
		data: [][]any{
			{"CUST-001", &region},
			{"CUST-002", nil},
		},
	}
	exec := &clickhouseExecutor{conn: &fakeConn{rows: rows}}

	result, err := exec.Execute(context.Background(), "SELECT customer_key, region FROM dv.hub_customer")
	assert.NoError(t, err)

	assert.Equal(t, []string{"customer_key", "region"}, result.Columns)
	assert.Len(t, result.Rows, 2)
	assert.Equal(t, "CUST-001", result.Rows[0]["customer_key"])
	assert.Equal(t, "emea", result.Rows[0]["region"], "Nullable values should come back unwrapped")
	assert.Nil(t, result.Rows[1]["region"], "NULL should map to nil, not a nil pointer")
}

func TestClickHouseExecutor_Execute_Error(t *testing.T) {
	exec := &clickhouseExecutor{conn: &fakeConn{err: errors.New("query timeout")}}

	result, err := exec.Execute(context.Background(), "SELECT 1")
	assert.Error(t, err)
	assert.Nil(t, result)

	var qErr *QueryError
	assert.ErrorAs(t, err, &qErr)
}
