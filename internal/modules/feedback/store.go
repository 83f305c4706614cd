package feedback

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Postgres driver
)

type store struct {
	connect *sqlx.DB
	save    *sqlx.Stmt
}

func openStore(dsn string) (*store, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	saveStmt, err := db.Preparex(`
insert into feedback(
  guild_id,
  channel_id,
  author_id,
  content,
  time
) values (
  $1,
  $2,
  $3,
  $4,
  now()
)
`)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return &store{
		connect: db,
		save:    saveStmt,
	}, nil
}

func (st *store) record(guildID, channelID, authorID, content string) error {
	_, err := st.save.Exec(guildID, channelID, authorID, content)

	return err
}

func (st *store) close() {
	_ = st.connect.Close()
}
