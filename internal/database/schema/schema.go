package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- User Stats
-- One row per user, keyed by the external auth UID. Progress counters live
-- in JSONB so new counters need no migration.
CREATE TABLE IF NOT EXISTS user_stats (
    user_id VARCHAR(128) PRIMARY KEY,
    email VARCHAR(255) NOT NULL DEFAULT '',
    level INTEGER NOT NULL DEFAULT 1,
    current_xp INTEGER NOT NULL DEFAULT 0,
    xp_to_next_level INTEGER NOT NULL DEFAULT 100,
    attribute_points INTEGER NOT NULL DEFAULT 0,
    rank VARCHAR(2) NOT NULL DEFAULT 'E',
    coins INTEGER NOT NULL DEFAULT 0,
    selected_title VARCHAR(100) NOT NULL DEFAULT '',
    active_theme VARCHAR(100) NOT NULL DEFAULT 'default',
    strength INTEGER NOT NULL DEFAULT 1,
    intellect INTEGER NOT NULL DEFAULT 1,
    stamina INTEGER NOT NULL DEFAULT 1,
    progress JSONB NOT NULL DEFAULT '{}',
    current_streak INTEGER NOT NULL DEFAULT 0,
    last_completed_date VARCHAR(10) NOT NULL DEFAULT '',
    last_reset_date VARCHAR(10) NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Tasks (dailies and todos)
CREATE TABLE IF NOT EXISTS tasks (
    task_id UUID PRIMARY KEY,
    owner_id VARCHAR(128) NOT NULL REFERENCES user_stats(user_id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    is_complete BOOLEAN NOT NULL DEFAULT FALSE,
    xp INTEGER NOT NULL DEFAULT 0,
    task_type VARCHAR(10) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);

-- Shared Daily Quest Pool
CREATE TABLE IF NOT EXISTS quest_pool (
    quest_id VARCHAR(64) PRIMARY KEY,
    title TEXT NOT NULL,
    xp INTEGER NOT NULL DEFAULT 0
);

INSERT INTO quest_pool (quest_id, title, xp) VALUES
    ('quest-stretch',  'Stretch for 5 minutes', 15),
    ('quest-hydrate',  'Drink 8 glasses of water', 10),
    ('quest-walk',     'Take a 20 minute walk', 25),
    ('quest-journal',  'Write a journal entry', 20),
    ('quest-read',     'Read 10 pages', 20),
    ('quest-meditate', 'Meditate for 10 minutes', 25),
    ('quest-tidy',     'Tidy your workspace', 15),
    ('quest-sleep',    'Get to bed before midnight', 30)
ON CONFLICT DO NOTHING;

-- Active Quests (per-user rolled instances, replaced at each daily reset)
CREATE TABLE IF NOT EXISTS active_quests (
    active_quest_id UUID PRIMARY KEY,
    owner_id VARCHAR(128) NOT NULL REFERENCES user_stats(user_id) ON DELETE CASCADE,
    original_quest_id VARCHAR(64) NOT NULL,
    title TEXT NOT NULL,
    xp INTEGER NOT NULL DEFAULT 0,
    is_complete BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_active_quests_owner ON active_quests(owner_id);

-- Bosses
CREATE TABLE IF NOT EXISTS bosses (
    boss_id UUID PRIMARY KEY,
    owner_id VARCHAR(128) NOT NULL REFERENCES user_stats(user_id) ON DELETE CASCADE,
    boss_name TEXT NOT NULL,
    total_hp INTEGER NOT NULL,
    current_hp INTEGER NOT NULL,
    is_complete BOOLEAN NOT NULL DEFAULT FALSE,
    difficulty VARCHAR(10) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_bosses_owner ON bosses(owner_id);

-- Boss Attacks
CREATE TABLE IF NOT EXISTS boss_attacks (
    attack_id UUID PRIMARY KEY,
    boss_id UUID NOT NULL REFERENCES bosses(boss_id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    base_damage INTEGER NOT NULL DEFAULT 0,
    attribute VARCHAR(20) NOT NULL,
    xp INTEGER NOT NULL DEFAULT 0,
    coins INTEGER NOT NULL DEFAULT 0,
    is_complete BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_boss_attacks_boss ON boss_attacks(boss_id);

-- Achievement Catalog
CREATE TABLE IF NOT EXISTS achievements (
    achievement_id VARCHAR(64) PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    unlocked_title VARCHAR(100) NOT NULL DEFAULT '',
    stat_to_track VARCHAR(50) NOT NULL,
    unlock_threshold INTEGER NOT NULL
);

INSERT INTO achievements (achievement_id, title, description, unlocked_title, stat_to_track, unlock_threshold) VALUES
    ('ach-level-5',    'Getting Started',  'Reach level 5',            'Novice',       'level',            5),
    ('ach-level-10',   'Rank Up',          'Reach level 10',           'Adventurer',   'level',            10),
    ('ach-level-25',   'Seasoned',         'Reach level 25',           'Veteran',      'level',            25),
    ('ach-level-50',   'Apex',             'Reach level 50',           'S-Rank',       'level',            50),
    ('ach-tasks-10',   'Diligent',         'Complete 10 tasks',        'Taskmaster',   'tasksCompleted',   10),
    ('ach-tasks-50',   'Relentless',       'Complete 50 tasks',        'Machine',      'tasksCompleted',   50),
    ('ach-tasks-100',  'Unstoppable',      'Complete 100 tasks',       'Legend',       'tasksCompleted',   100),
    ('ach-coins-1000', 'Deep Pockets',     'Earn 1000 coins in total', 'Tycoon',       'totalCoinsEarned', 1000)
ON CONFLICT DO NOTHING;

-- Unlocked Achievements
-- Row existence is the unlock flag, so the primary key doubles as the
-- exactly-once guard.
CREATE TABLE IF NOT EXISTS unlocked_achievements (
    user_id VARCHAR(128) NOT NULL REFERENCES user_stats(user_id) ON DELETE CASCADE,
    achievement_id VARCHAR(64) NOT NULL REFERENCES achievements(achievement_id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    unlocked_title VARCHAR(100) NOT NULL DEFAULT '',
    unlocked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, achievement_id)
);

-- Shop Catalog
CREATE TABLE IF NOT EXISTS shop_items (
    item_id VARCHAR(64) PRIMARY KEY,
    item_name TEXT NOT NULL,
    item_type VARCHAR(20) NOT NULL,
    cost INTEGER NOT NULL
);

INSERT INTO shop_items (item_id, item_name, item_type, cost) VALUES
    ('theme-dark',    'Dark Mode',      'theme', 50),
    ('theme-forest',  'Forest',         'theme', 100),
    ('theme-ocean',   'Ocean',          'theme', 100),
    ('theme-sunset',  'Sunset',         'theme', 150),
    ('badge-star',    'Star Badge',     'badge', 120),
    ('badge-flame',   'Flame Badge',    'badge', 200),
    ('badge-crown',   'Crown Badge',    'badge', 500)
ON CONFLICT DO NOTHING;

-- Unlocked Shop Items
CREATE TABLE IF NOT EXISTS unlocked_items (
    user_id VARCHAR(128) NOT NULL REFERENCES user_stats(user_id) ON DELETE CASCADE,
    item_id VARCHAR(64) NOT NULL REFERENCES shop_items(item_id) ON DELETE CASCADE,
    unlocked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, item_id)
);

-- Event Audit Log
-- Append-only record of every bus event. Payloads keep their original
-- wire shape, so reads return raw JSON rather than typed structs.
CREATE TABLE IF NOT EXISTS event_log (
    id BIGSERIAL PRIMARY KEY,
    event_type VARCHAR(64) NOT NULL,
    user_id VARCHAR(128) NOT NULL DEFAULT '',
    version VARCHAR(16) NOT NULL DEFAULT '',
    payload JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_event_log_user_created ON event_log (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_event_log_type_created ON event_log (event_type, created_at DESC);
`
