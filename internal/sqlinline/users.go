package sqlinline

const QInsertUser = `--sql bbd426af-7406-41ac-b636-aec65bdb938c
insert into users(id, username, email, password_hash, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, now(), now())
returning id, created_at;
`

const QSelectUserByUsername = `--sql 346cd81c-f343-426f-8b83-9a780df5cc0c
select id, username, email, password_hash
from users
where username = $1::text
limit 1;
`

const QSelectUserByID = `--sql 9f0f563c-c6b0-4b16-8bcf-dbde99f5f07b
select id, username, email, created_at
from users
where id = $1::uuid
limit 1;
`
