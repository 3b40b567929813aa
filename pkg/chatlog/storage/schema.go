package storage

import "fmt"

// sqliteSchema returns the statements creating table in SQLite.
func sqliteSchema(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    message_time INTEGER NOT NULL,
    kind VARCHAR(4) NOT NULL,
    source_id INTEGER NOT NULL,
    source_name VARCHAR(64) NOT NULL,
    source_team INTEGER NOT NULL,
    text TEXT NOT NULL,
    target_id INTEGER NULL,
    target_name VARCHAR(64) NULL,
    target_team INTEGER NULL
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_message_time ON %s(message_time)`, table, table),
	}
}

// mysqlSchema returns the statements creating table in MySQL.
func mysqlSchema(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id INT UNSIGNED NOT NULL AUTO_INCREMENT,
    message_time INT UNSIGNED NOT NULL,
    kind ENUM('ALL', 'TEAM', 'PM') NOT NULL,
    source_id INT UNSIGNED NOT NULL,
    source_name VARCHAR(64) NOT NULL,
    source_team TINYINT NOT NULL,
    text VARCHAR(528) NOT NULL,
    target_id INT UNSIGNED NULL,
    target_name VARCHAR(64) NULL,
    target_team TINYINT NULL,
    PRIMARY KEY (id),
    INDEX message_time (message_time)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, table),
	}
}
