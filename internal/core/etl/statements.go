package etl

import (
	"fmt"

	"github.com/lib/pq"
)

type Statement struct {
	Name  string
	Query string
}

func (s Statement) String() string {
	return s.Name
}

const (
	StagingEventsTable = "staging_events"
	StagingSongsTable  = "staging_songs"
	SongplaysTable     = "songplays"
	UsersTable         = "users"
	SongsTable         = "songs"
	ArtistsTable       = "artists"
	TimeTable          = "time"
)

var StagingTables = []string{StagingEventsTable, StagingSongsTable}

var ModeledTables = []string{UsersTable, SongsTable, ArtistsTable, TimeTable, SongplaysTable}

func dropTable(table string) Statement {
	return Statement{Name: "drop " + table, Query: fmt.Sprintf("DROP TABLE IF EXISTS %s", table)}
}

// DropTableStatements relies on IF EXISTS rather than on the order to tolerate
// tables that are already gone.
var DropTableStatements = []Statement{
	dropTable(StagingEventsTable),
	dropTable(StagingSongsTable),
	dropTable(SongplaysTable),
	dropTable(UsersTable),
	dropTable(SongsTable),
	dropTable(ArtistsTable),
	dropTable(TimeTable),
}

var CreateTableStatements = []Statement{
	{Name: "create " + StagingEventsTable, Query: `
        CREATE TABLE IF NOT EXISTS staging_events (
            artist VARCHAR,
            auth VARCHAR,
            firstName VARCHAR,
            gender CHAR,
            itemInSession INT,
            lastName VARCHAR,
            length NUMERIC(10,5),
            level VARCHAR,
            location VARCHAR,
            method VARCHAR,
            page VARCHAR,
            registration VARCHAR,
            sessionId BIGINT,
            song VARCHAR,
            status INT,
            ts TIMESTAMP,
            userAgent VARCHAR,
            userId BIGINT
        )`},
	{Name: "create " + StagingSongsTable, Query: `
        CREATE TABLE IF NOT EXISTS staging_songs (
            num_songs INT,
            artist_id VARCHAR,
            artist_latitude FLOAT,
            artist_longitude FLOAT,
            artist_location VARCHAR,
            artist_name VARCHAR,
            song_id VARCHAR,
            title VARCHAR,
            duration NUMERIC(10,5),
            year INT
        )`},
	{Name: "create " + UsersTable, Query: `
        CREATE TABLE IF NOT EXISTS users (
            user_id BIGINT PRIMARY KEY,
            first_name VARCHAR NOT NULL,
            last_name VARCHAR NOT NULL,
            gender CHAR NOT NULL,
            level VARCHAR(4) NOT NULL
        )`},
	{Name: "create " + SongsTable, Query: `
        CREATE TABLE IF NOT EXISTS songs (
            song_id VARCHAR PRIMARY KEY,
            title VARCHAR NOT NULL,
            artist_id VARCHAR,
            year INT,
            duration NUMERIC(10,5) NOT NULL
        )`},
	{Name: "create " + ArtistsTable, Query: `
        CREATE TABLE IF NOT EXISTS artists (
            artist_id VARCHAR PRIMARY KEY,
            name VARCHAR NOT NULL,
            location VARCHAR,
            latitude FLOAT,
            longitude FLOAT
        )`},
	{Name: "create " + TimeTable, Query: `
        CREATE TABLE IF NOT EXISTS time (
            start_time TIMESTAMP PRIMARY KEY,
            hour INT,
            day INT,
            week INT,
            month INT,
            year INT,
            weekday INT
        )`},
	{Name: "create " + SongplaysTable, Query: `
        CREATE TABLE IF NOT EXISTS songplays (
            songplay_id BIGINT IDENTITY(0,1) PRIMARY KEY,
            start_time TIMESTAMP NOT NULL REFERENCES time,
            user_id BIGINT NOT NULL REFERENCES users,
            level VARCHAR(4) NOT NULL,
            song_id VARCHAR REFERENCES songs,
            artist_id VARCHAR REFERENCES artists,
            session_id INT,
            location VARCHAR,
            user_agent VARCHAR
        )`},
}

type LoadConfig struct {
	LogData     string
	LogJsonPath string
	SongData    string
	RoleArn     string
	Region      string
}

func CopyStatements(config LoadConfig) []Statement {
	return []Statement{
		{Name: "copy " + StagingEventsTable, Query: fmt.Sprintf(`
        COPY staging_events FROM %s
        credentials %s
        JSON %s compupdate off
        region %s
        timeformat as 'epochmillisecs'`,
			pq.QuoteLiteral(config.LogData),
			pq.QuoteLiteral("aws_iam_role="+config.RoleArn),
			pq.QuoteLiteral(config.LogJsonPath),
			pq.QuoteLiteral(config.Region))},
		{Name: "copy " + StagingSongsTable, Query: fmt.Sprintf(`
        COPY staging_songs FROM %s
        credentials %s
        JSON 'auto' truncatecolumns compupdate off
        region %s`,
			pq.QuoteLiteral(config.SongData),
			pq.QuoteLiteral("aws_iam_role="+config.RoleArn),
			pq.QuoteLiteral(config.Region))},
	}
}

// InsertStatements populates the dimensions before the fact table so that every
// key a songplay references already exists. A songplay is only produced when an
// event matches a song on artist name, duration and title exactly.
var InsertStatements = []Statement{
	{Name: "insert " + UsersTable, Query: `
        INSERT INTO users (user_id, first_name, last_name, gender, level)
        SELECT DISTINCT e.userId AS user_id,
               e.firstName AS first_name,
               e.lastName AS last_name,
               e.gender,
               e.level
        FROM staging_events e
        WHERE e.page = 'NextSong'
        AND e.userId IS NOT NULL
        AND e.ts = (SELECT max(l.ts)
                    FROM staging_events l
                    WHERE l.userId = e.userId
                    AND l.page = 'NextSong')`},
	{Name: "insert " + SongsTable, Query: `
        INSERT INTO songs (song_id, title, artist_id, year, duration)
        SELECT DISTINCT song_id,
               title,
               artist_id,
               year,
               duration
        FROM staging_songs
        WHERE song_id IS NOT NULL`},
	{Name: "insert " + ArtistsTable, Query: `
        INSERT INTO artists (artist_id, name, location, latitude, longitude)
        SELECT DISTINCT artist_id,
               artist_name AS name,
               artist_location AS location,
               artist_latitude AS latitude,
               artist_longitude AS longitude
        FROM staging_songs
        WHERE artist_id IS NOT NULL`},
	{Name: "insert " + TimeTable, Query: `
        INSERT INTO time (start_time, hour, day, week, month, year, weekday)
        SELECT DISTINCT ts AS start_time,
               EXTRACT(hour FROM ts) AS hour,
               EXTRACT(day FROM ts) AS day,
               EXTRACT(week FROM ts) AS week,
               EXTRACT(month FROM ts) AS month,
               EXTRACT(year FROM ts) AS year,
               EXTRACT(DOW FROM ts) AS weekday
        FROM staging_events
        WHERE page = 'NextSong'
        AND ts IS NOT NULL`},
	{Name: "insert " + SongplaysTable, Query: `
        INSERT INTO songplays (start_time, user_id, level, song_id, artist_id,
                               session_id, location, user_agent)
        SELECT e.ts AS start_time,
               e.userId AS user_id,
               e.level,
               s.song_id,
               s.artist_id,
               e.sessionId AS session_id,
               e.location,
               e.userAgent AS user_agent
        FROM staging_events e
        JOIN staging_songs s ON e.artist = s.artist_name
        AND e.length = s.duration
        AND e.song = s.title
        WHERE e.page = 'NextSong'
        AND e.userId IS NOT NULL`},
}
