package sqlinline

const QInsertFundraiser = `--sql 7ab8a88d-b799-43d4-8a1f-aadcf66233d3
insert into fundraisers(id, title, description, goal, image, is_open, date_created, owner_id)
values (gen_random_uuid(), $1::text, $2::text, $3::bigint, $4::text, $5::boolean, now(), $6::uuid)
returning id, date_created;
`

const QListFundraisers = `--sql 183a5414-095a-47c3-bed0-82f32e68a92a
select id, title, description, goal, image, is_open, date_created, owner_id
from fundraisers
order by date_created desc;
`

const QSelectFundraiserByID = `--sql 77813733-850a-4a8d-bdb5-f6b50850609c
select id, title, description, goal, image, is_open, date_created, owner_id
from fundraisers
where id = $1::uuid
limit 1;
`

const QUpdateFundraiser = `--sql 15e54f11-7c88-437c-8bd9-a8ce59267a98
update fundraisers
set title = $2::text,
    description = $3::text,
    goal = $4::bigint,
    image = $5::text,
    is_open = $6::boolean
where id = $1::uuid;
`

// Cascade delete is spelled out as two explicit steps inside one atomic
// statement: child pledges first, then the fundraiser row.
const QDeleteFundraiserCascade = `--sql 420173a6-b956-4616-a40f-c56b961ce6ab
with removed_pledges as (
  delete from pledges
  where fundraiser_id = $1::uuid
)
delete from fundraisers
where id = $1::uuid;
`
