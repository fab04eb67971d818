package db

const sessionCreateQ = `
INSERT INTO sessions (user_id, token_hash, device_info, ip_address, user_agent, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

const sessionFindActiveQ = `
SELECT
	id,
	user_id,
	token_hash,
	device_info,
	ip_address,
	user_agent,
	is_revoked,
	revoked_at,
	revoked_reason,
	expires_at,
	created_at
FROM sessions
WHERE token_hash = $1 AND is_revoked = FALSE AND expires_at > NOW()
`

const sessionGetByIDQ = `
SELECT
	id,
	user_id,
	token_hash,
	device_info,
	ip_address,
	user_agent,
	is_revoked,
	revoked_at,
	revoked_reason,
	expires_at,
	created_at
FROM sessions
WHERE id = $1
`

const sessionRevokeQ = `
UPDATE sessions
SET is_revoked = TRUE, revoked_at = NOW(), revoked_reason = $2
WHERE id = $1 AND is_revoked = FALSE
`

const sessionRevokeAllQ = `
UPDATE sessions
SET is_revoked = TRUE, revoked_at = NOW(), revoked_reason = $2
WHERE user_id = $1 AND is_revoked = FALSE AND expires_at > NOW()
`

const sessionStatsQ = `
SELECT
	COUNT(*) AS total,
	COUNT(*) FILTER (WHERE is_revoked = FALSE AND expires_at > NOW()) AS active,
	COUNT(*) FILTER (WHERE is_revoked = TRUE) AS revoked
FROM sessions
WHERE user_id = $1
`

const sessionDeleteStaleQ = `
DELETE FROM sessions
WHERE expires_at < NOW() - $1::interval
   OR (is_revoked = TRUE AND revoked_at < NOW() - $1::interval)
`

const sessionCountQ = `
SELECT COUNT(*) FROM sessions
`

const userGetByEmailQ = `
SELECT
	u.id,
	u.name,
	u.email,
	u.password,
	u.role,
	u.is_active,
	u.token_version,
	u.created_at,
	u.updated_at
FROM users u
WHERE u.email = $1
`

const userGetByIDQ = `
SELECT
	u.id,
	u.name,
	u.email,
	u.password,
	u.role,
	u.is_active,
	u.token_version,
	u.created_at,
	u.updated_at
FROM users u
WHERE u.id = $1
`

const userBumpTokenVersionQ = `
UPDATE users
SET token_version = token_version + 1, updated_at = NOW()
WHERE id = $1
`
