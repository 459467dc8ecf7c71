package sqlinline

const QInsertPledge = `--sql e76daffa-4887-4a00-8055-c9dbceb3cdba
insert into pledges(id, amount, comment, anonymous, is_hidden_by_owner, date_created, fundraiser_id, supporter_id)
values (gen_random_uuid(), $1::bigint, $2::text, $3::boolean, false, now(), $4::uuid, $5::uuid)
returning id, date_created;
`

const QListPledges = `--sql 62887ee0-b3d3-4ed4-bed0-c97b0f2964df
select p.id, p.amount, p.comment, p.anonymous, p.is_hidden_by_owner, p.date_created,
       p.fundraiser_id, p.supporter_id, f.owner_id
from pledges p
join fundraisers f on f.id = p.fundraiser_id
order by p.date_created desc;
`

const QSelectPledgeByID = `--sql bd392b7b-8afd-4fb1-8d58-3f2c8c37e029
select p.id, p.amount, p.comment, p.anonymous, p.is_hidden_by_owner, p.date_created,
       p.fundraiser_id, p.supporter_id, f.owner_id
from pledges p
join fundraisers f on f.id = p.fundraiser_id
where p.id = $1::uuid
limit 1;
`

const QListPledgesByFundraiser = `--sql 20c59266-3644-46ba-b756-012af87f82dd
select p.id, p.amount, p.comment, p.anonymous, p.is_hidden_by_owner, p.date_created,
       p.fundraiser_id, p.supporter_id, f.owner_id
from pledges p
join fundraisers f on f.id = p.fundraiser_id
where p.fundraiser_id = $1::uuid
order by p.date_created asc;
`

const QUpdatePledgeContent = `--sql af9ae198-76bd-4c53-9d23-e399e1d04a56
update pledges
set comment = $2::text,
    anonymous = $3::boolean
where id = $1::uuid;
`

const QSetPledgeHidden = `--sql 4de2d0be-a4b2-4fe7-ac3f-230f2b1332c9
update pledges
set is_hidden_by_owner = $2::boolean
where id = $1::uuid;
`

// Clearing a comment is a soft delete of content only; the row survives.
const QClearPledgeComment = `--sql 45363ddb-c984-4ae1-8011-d8d93b8e8b71
update pledges
set comment = ''
where id = $1::uuid;
`
