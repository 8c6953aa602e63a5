package cqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dot5enko/flexrow/config"
	"github.com/dot5enko/flexrow/manager/query"
	"github.com/dot5enko/flexrow/schema"
	"github.com/dot5enko/flexrow/storage"
	"github.com/gocql/gocql"
)

// Store runs the storage operations on a Cassandra compatible cluster. The
// gocql session is a shared connection pool, safe for concurrent use.
type Store struct {
	session  *gocql.Session
	keyspace string
}

var _ storage.Store = (*Store)(nil)

func newCluster(cfg config.CqlConfig, keyspace string) (*gocql.ClusterConfig, error) {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = keyspace

	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
	}

	if cfg.Consistency != "" {
		consistency, parseErr := gocql.ParseConsistencyWrapper(cfg.Consistency)
		if parseErr != nil {
			return nil, parseErr
		}
		cluster.Consistency = consistency
	}

	return cluster, nil
}

// Open connects to the cluster, creating the configured keyspace when it
// does not exist yet.
func Open(ctx context.Context, cfg config.CqlConfig) (*Store, error) {

	bootstrapCluster, clusterErr := newCluster(cfg, "")
	if clusterErr != nil {
		return nil, clusterErr
	}

	bootstrap, sessionErr := bootstrapCluster.CreateSession()
	if sessionErr != nil {
		return nil, fmt.Errorf("unable to connect to %v : %w", cfg.Hosts, sessionErr)
	}

	keyspaceErr := createKeyspace(ctx, bootstrap, cfg.Keyspace, DefaultReplication(cfg.ReplicationFactor))
	bootstrap.Close()

	if keyspaceErr != nil {
		return nil, keyspaceErr
	}

	cluster, _ := newCluster(cfg, cfg.Keyspace)

	session, sessionErr := cluster.CreateSession()
	if sessionErr != nil {
		return nil, fmt.Errorf("unable to open keyspace `%s` : %w", cfg.Keyspace, sessionErr)
	}

	slog.Info("connected to cluster", "hosts", cfg.Hosts, "keyspace", cfg.Keyspace)

	return &Store{session: session, keyspace: cfg.Keyspace}, nil
}

func (s *Store) Close() {
	s.session.Close()
}

func createKeyspace(ctx context.Context, session *gocql.Session, name string, replication map[string]string) error {
	if len(replication) == 0 {
		replication = DefaultReplication(0)
	}

	stmt := createKeyspaceStmt(name, replication)
	if err := session.Query(stmt).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("unable to create keyspace `%s` : %w", name, err)
	}

	return nil
}

// CreateKeyspace creates another keyspace on the cluster. A nil replication
// uses SimpleStrategy with factor 3.
func (s *Store) CreateKeyspace(ctx context.Context, name string, replication map[string]string) error {
	return createKeyspace(ctx, s.session, name, replication)
}

func (s *Store) Scan(ctx context.Context, table string) ([]query.Record, error) {
	stmt, values := query.SelectStatement{Table: table}.CQL()
	return s.readRecords(ctx, table, stmt, values)
}

func (s *Store) FilteredScan(ctx context.Context, selectStmt query.SelectStatement) ([]query.Record, error) {
	stmt, values := selectStmt.CQL()
	return s.readRecords(ctx, selectStmt.Table, stmt, values)
}

func (s *Store) readRecords(ctx context.Context, table, stmt string, values []any) ([]query.Record, error) {

	iter := s.session.Query(stmt, values...).WithContext(ctx).Iter()

	columns := iter.Columns()
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}

	result := []query.Record{}

	for {
		cells := make([]*string, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}

		if !iter.Scan(dest...) {
			break
		}

		rec := cqlRecord{columns: names, values: make(map[string]string, len(columns))}
		for i, cell := range cells {
			// null cells stay absent
			if cell != nil {
				rec.values[names[i]] = *cell
			}
		}

		result = append(result, rec)
	}

	if closeErr := iter.Close(); closeErr != nil {
		return nil, translateErr(table, closeErr)
	}

	return result, nil
}

func (s *Store) Insert(ctx context.Context, table string, row schema.Row) error {

	if validateErr := row.Validate(); validateErr != nil {
		return validateErr
	}

	stmt, values := insertStmt(table, row)

	if err := s.session.Query(stmt, values...).WithContext(ctx).Exec(); err != nil {
		return translateErr(table, err)
	}

	return nil
}

type columnInfo struct {
	name     string
	kind     string
	position int
}

func kindOrder(kind string) int {
	switch kind {
	case "partition_key":
		return 0
	case "clustering":
		return 1
	default:
		return 2
	}
}

func (s *Store) Columns(ctx context.Context, table string) ([]string, error) {

	iter := s.session.Query(selectColumnsStmt, s.keyspace, table).WithContext(ctx).Iter()

	infos := []columnInfo{}

	var info columnInfo
	for iter.Scan(&info.name, &info.kind, &info.position) {
		infos = append(infos, info)
	}

	if closeErr := iter.Close(); closeErr != nil {
		return nil, closeErr
	}

	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: `%s`", storage.ErrTableNotFound, table)
	}

	slices.SortStableFunc(infos, func(a, b columnInfo) int {
		if d := kindOrder(a.kind) - kindOrder(b.kind); d != 0 {
			return d
		}
		if d := a.position - b.position; d != 0 {
			return d
		}
		return strings.Compare(a.name, b.name)
	})

	names := make([]string, 0, len(infos))
	for _, it := range infos {
		names = append(names, it.name)
	}

	return names, nil
}

func (s *Store) AddColumn(ctx context.Context, table, column string, indexed bool) error {

	alterErr := s.session.Query(addColumnStmt(table, column)).WithContext(ctx).Exec()
	if alterErr != nil && !isDuplicateColumn(alterErr) {
		return translateErr(table, alterErr)
	}

	if indexed {
		if indexErr := s.session.Query(createIndexStmt(table, column)).WithContext(ctx).Exec(); indexErr != nil {
			return fmt.Errorf("unable to index column `%s` : %w", column, indexErr)
		}
	}

	return nil
}

func (s *Store) CreateTable(ctx context.Context, table schema.Table) error {

	if err := s.session.Query(createTableStmt(table)).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("unable to create table `%s` : %w", table.Name, err)
	}

	for _, col := range table.Columns {
		if !col.Indexed {
			continue
		}
		if indexErr := s.session.Query(createIndexStmt(table.Name, col.Name)).WithContext(ctx).Exec(); indexErr != nil {
			return fmt.Errorf("unable to index column `%s` : %w", col.Name, indexErr)
		}
	}

	return nil
}

// DropTable never fails, a missing table is a no-op.
func (s *Store) DropTable(ctx context.Context, table string) error {
	if err := s.session.Query(dropTableStmt(table)).WithContext(ctx).Exec(); err != nil {
		slog.Warn("drop table failed", "table", table, "err", err)
	}

	return nil
}

func (s *Store) Tables(ctx context.Context) ([]string, error) {

	iter := s.session.Query(selectTablesStmt, s.keyspace).WithContext(ctx).Iter()

	names := []string{}

	var name string
	for iter.Scan(&name) {
		names = append(names, name)
	}

	if closeErr := iter.Close(); closeErr != nil {
		return nil, closeErr
	}

	slices.Sort(names)
	return names, nil
}

func isDuplicateColumn(err error) bool {
	var reqErr gocql.RequestError
	if !errors.As(err, &reqErr) || reqErr.Code() != gocql.ErrCodeInvalid {
		return false
	}

	return strings.Contains(strings.ToLower(reqErr.Message()), "conflicts with an existing column")
}

func translateErr(table string, err error) error {
	var reqErr gocql.RequestError
	if errors.As(err, &reqErr) && reqErr.Code() == gocql.ErrCodeInvalid &&
		strings.Contains(strings.ToLower(reqErr.Message()), "unconfigured table") {
		return fmt.Errorf("%w: `%s`", storage.ErrTableNotFound, table)
	}

	return err
}

type cqlRecord struct {
	columns []string
	values  map[string]string
}

func (r cqlRecord) ColumnNames() []string {
	return r.columns
}

func (r cqlRecord) Value(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}
