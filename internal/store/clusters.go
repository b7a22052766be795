package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/starcluster/starcluster/internal/domain"
)

var (
	// ErrNotFound is returned when no active cluster has the requested tag.
	ErrNotFound = errors.New("cluster not found")

	// ErrClusterExists is returned by Record when an active cluster already
	// uses the tag.
	ErrClusterExists = errors.New("cluster already exists")
)

const selectCluster = `
	SELECT
		id,
		tag,
		template,
		size,
		cluster_user,
		shell,
		master_image,
		node_image,
		instance_type,
		zone,
		keyname,
		description,
		created_at
	FROM clusters
`

// Record stores a new cluster with its nodes and returns it with its
// assigned ID.
func (s *Store) Record(ctx context.Context, c domain.Cluster) (domain.Cluster, error) {
	if c.Tag.IsEmpty() {
		return domain.Cluster{}, errors.New("record cluster: empty tag")
	}
	if c.ID == "" {
		c.ID = s.newID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO clusters
			 (id, tag, template, size, cluster_user, shell, master_image, node_image,
			  instance_type, zone, keyname, description, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID,
			c.Tag.String(),
			c.Template,
			c.Size,
			c.User,
			c.Shell,
			c.MasterImage,
			c.NodeImage,
			c.InstanceType,
			c.Zone,
			c.KeyName,
			c.Description,
			c.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", ErrClusterExists, c.Tag)
			}
			return err
		}

		for i, n := range c.Nodes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO nodes (cluster_id, position, alias, hostname, state)
				 VALUES (?, ?, ?, ?, ?)`,
				c.ID, i, n.Alias, n.Hostname, string(n.State),
			); err != nil {
				return fmt.Errorf("insert node %s: %w", n.Alias, err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Cluster{}, fmt.Errorf("record cluster: %w", err)
	}
	return c, nil
}

// Get returns the active cluster with the given tag.
func (s *Store) Get(ctx context.Context, tag domain.ClusterTag) (domain.Cluster, error) {
	row := s.db.QueryRowContext(ctx, selectCluster+` WHERE tag = ? AND removed_at IS NULL`, tag.String())

	c, err := scanCluster(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cluster{}, fmt.Errorf("%w: %s", ErrNotFound, tag)
	}
	if err != nil {
		return domain.Cluster{}, err
	}

	c.Nodes, err = s.nodes(ctx, s.db, c.ID)
	if err != nil {
		return domain.Cluster{}, err
	}
	return c, nil
}

// List returns every active cluster, oldest first.
func (s *Store) List(ctx context.Context) ([]domain.Cluster, error) {
	rows, err := s.db.QueryContext(ctx, selectCluster+` WHERE removed_at IS NULL ORDER BY created_at ASC, tag ASC`)
	if err != nil {
		return nil, err
	}

	var out []domain.Cluster
	for rows.Next() {
		c, err := scanCluster(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// Close before loading nodes; the store holds a single connection.
	if err := rows.Close(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Nodes, err = s.nodes(ctx, s.db, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Stop marks every node of the cluster stopped and removes the cluster from
// the active set. The returned cluster carries the stopped nodes.
func (s *Store) Stop(ctx context.Context, tag domain.ClusterTag) (domain.Cluster, error) {
	var stopped domain.Cluster

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		c, err := scanCluster(tx.QueryRowContext(ctx, selectCluster+` WHERE tag = ? AND removed_at IS NULL`, tag.String()))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, tag)
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE nodes SET state = ? WHERE cluster_id = ?`,
			string(domain.NodeStopped), c.ID,
		); err != nil {
			return fmt.Errorf("stop nodes: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE clusters SET removed_at = ? WHERE id = ?`,
			s.now().UTC().Format(time.RFC3339), c.ID,
		); err != nil {
			return fmt.Errorf("remove cluster: %w", err)
		}

		if c.Nodes, err = s.nodes(ctx, tx, c.ID); err != nil {
			return err
		}
		stopped = c
		return nil
	})
	if err != nil {
		return domain.Cluster{}, err
	}
	return stopped, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) nodes(ctx context.Context, q querier, clusterID string) ([]domain.Node, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT alias, hostname, state FROM nodes WHERE cluster_id = ? ORDER BY position ASC`,
		clusterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Node
	for rows.Next() {
		var (
			n     domain.Node
			state string
		)
		if err := rows.Scan(&n.Alias, &n.Hostname, &state); err != nil {
			return nil, err
		}
		n.State = domain.NodeState(state)
		out = append(out, n)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCluster(row scanner) (domain.Cluster, error) {
	var (
		c         domain.Cluster
		tag       string
		createdAt string
	)

	if err := row.Scan(
		&c.ID,
		&tag,
		&c.Template,
		&c.Size,
		&c.User,
		&c.Shell,
		&c.MasterImage,
		&c.NodeImage,
		&c.InstanceType,
		&c.Zone,
		&c.KeyName,
		&c.Description,
		&createdAt,
	); err != nil {
		return domain.Cluster{}, err
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return domain.Cluster{}, fmt.Errorf("parse created_at: %w", err)
	}

	c.Tag = domain.ClusterTag(tag)
	c.CreatedAt = t
	return c, nil
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
