package storage

const (
	insertSessionSQL = `
INSERT INTO sessions (created_at,
                      telescope,
                      system_name,
                      mode,
                      noise,
                      kind,
                      dtype,
                      num_rows,
                      num_samples,
                      dt_seconds,
                      fcent_hz,
                      bandwidth_hz)
VALUES (CURRENT_TIMESTAMP, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectSessionSQL = `
SELECT
    id,
    created_at,
    telescope,
    system_name,
    mode,
    noise,
    kind,
    dtype,
    num_rows,
    num_samples,
    dt_seconds,
    fcent_hz,
    bandwidth_hz
FROM sessions
WHERE
    id = ?`

	selectSessionsSQL = `
SELECT
    id,
    created_at,
    telescope,
    system_name,
    mode,
    noise,
    kind,
    dtype,
    num_rows,
    num_samples,
    dt_seconds,
    fcent_hz,
    bandwidth_hz
FROM sessions
ORDER BY created_at`

	insertRowSQL = `
INSERT INTO observation_rows (session_id, row_index, samples)
VALUES (?, ?, ?)`

	selectRowsSQL = `
SELECT
    row_index,
    samples
FROM observation_rows
WHERE
    session_id = ?
ORDER BY row_index`
)
