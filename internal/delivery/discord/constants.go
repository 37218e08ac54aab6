package discord

const (
	// Display limits
	maxMessageLength     = 2000
	maxMessageTruncation = 1990
	maxSelectOptions     = 25

	// Win rate thresholds for color coding
	winRateExcellent = 75.0
	winRateGood      = 60.0
	winRatePoor      = 40.0

	// Embed colors
	colorGold   = 0xFFD700 // Leaderboard
	colorGreen  = 0x2ECC71 // Good win rate / success
	colorPurple = 0x9B59B6 // Excellent win rate
	colorRed    = 0xE74C3C // Poor win rate / cancelled
	colorGray   = 0x95A5A6 // Default/neutral
	colorBlue   = 0x3498DB // Info
	colorOrange = 0xE67E22 // Recruitment
)

// Component custom ID prefixes. Arguments follow after ':'.
const (
	cidScrimOpponentSelect = "scrim_opponent"
	cidScrimOpponentModal  = "scrim_opponent_modal"
	cidScrimDates          = "scrim_dates"
	cidScrimTimes          = "scrim_times"
	cidScrimTimeModal      = "scrim_time_modal"
	cidScrimTier           = "scrim_tier"
	cidScrimDeadlineButton = "scrim_deadline"
	cidScrimDeadlineModal  = "scrim_deadline_modal"
	cidScrimDescButton     = "scrim_desc"
	cidScrimDescModal      = "scrim_desc_modal"
	cidScrimPublish        = "scrim_publish"
	cidScrimDiscard        = "scrim_discard"

	cidSignupRole   = "signup"        // signup:<recID>:<role>
	cidSignupSlots  = "signup_slots"  // signup_slots:<recID>:<role>
	cidFinalize     = "finalize"      // finalize:<recID>
	cidFinalizePick = "finalize_pick" // finalize_pick:<recID>
	cidRecCancel    = "rec_cancel"    // rec_cancel:<recID>

	cidRosterConfirm = "rec_roster_confirm"
	cidRosterAdd     = "rec_roster_add"
	cidRosterRemove  = "rec_roster_remove"
	cidTeamA         = "rec_team_a"
	cidTeamB         = "rec_team_b"
	cidTeamBack      = "rec_team_back"
	cidWinner        = "rec_winner" // rec_winner:<side>
	cidWinnerOK      = "rec_winner_ok"
	cidWinnerRedo    = "rec_winner_redo"
	cidRole          = "rec_role" // rec_role:<role>
	cidRoleBack      = "rec_role_back"
	cidRoleRedo      = "rec_role_redo"
	cidSideOK        = "rec_side_ok"
	cidFinalOK       = "rec_final_ok"
	cidRedoWinner    = "rec_redo_winner"
	cidRedoRoles     = "rec_redo_roles" // rec_redo_roles:<side>
	cidMapType       = "rec_maptype"
	cidMapPick       = "rec_map"
	cidMapSkip       = "rec_map_skip"
	cidNextMatch     = "rec_next_match"
	cidSessionStatus = "rec_status"
	cidSessionDone   = "rec_complete"
	cidSessionCancel = "rec_session_cancel"

	cidTicketModal = "ticket_modal"
)
