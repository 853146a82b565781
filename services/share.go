package services

import (
	"fmt"
	"streak-pickem-go/models"
)

// ShareType selects which share message to generate.
type ShareType string

const (
	ShareStreak      ShareType = "streak"
	SharePick        ShareType = "pick"
	ShareAchievement ShareType = "achievement"
	ShareChallenge   ShareType = "challenge"
)

var streakMilestones = map[int]string{
	5:  "🎉 5-DAY STREAK UNLOCKED! 🎉",
	10: "🔥 DOUBLE DIGITS! 10-DAY STREAK! 🔥",
	15: "⚡ 15 DAYS OF PURE FIRE! ⚡",
	20: "🚨 20-DAY STREAK ALERT! 🚨",
	25: "👑 QUARTER CENTURY! 25 DAYS! 👑",
	30: "🏆 30 DAYS OF DOMINATION! 🏆",
}

// GenerateShareText builds the share message for the requested type.
// Unknown types and a pick share with no pick on file fall back to the
// streak message.
func GenerateShareText(shareType ShareType, state models.UserState, matchup *models.Matchup, appURL string) string {
	streak := state.CurrentStreak
	emoji := "🎯"
	if streak >= 10 {
		emoji = "🔥"
	} else if streak >= 5 {
		emoji = "⚡"
	}

	switch shareType {
	case SharePick:
		if matchup == nil || state.TodaysPick == nil {
			return GenerateShareText(ShareStreak, state, nil, appURL)
		}
		picked := matchup.HomeTeam.Name
		if state.TodaysPick.SelectedTeam == models.SideAway {
			picked = matchup.AwayTeam.Name
		}
		return fmt.Sprintf("Today's pick: %s vs %s %s\n\nI'm going with %s! 🤔\n\nCurrent streak: %d %s\n\nJoin me: %s",
			matchup.HomeTeam.Name, matchup.AwayTeam.Name, matchup.HomeTeam.Logo, picked, streak, emoji, appURL)

	case ShareAchievement:
		milestone, ok := streakMilestones[streak]
		if !ok {
			milestone = fmt.Sprintf("🔥 %d-DAY STREAK! 🔥", streak)
		}
		return fmt.Sprintf("%s\n\nI'm absolutely crushing it on Streak Pick'em! 💪\n\nWho wants to challenge the champion? 😎\n\n%s",
			milestone, appURL)

	case ShareChallenge:
		return fmt.Sprintf("🏆 I just hit %d days on Streak Pick'em!\n\nBet you can't beat my streak 😏\n\nProve me wrong: %s",
			streak, appURL)

	case ShareStreak:
		fallthrough
	default:
		switch {
		case streak == 0:
			return fmt.Sprintf("Just started my streak on Streak Pick'em! 🎯\n\nWho can predict sports better than me? 💪\n\nTry it: %s", appURL)
		case streak < 5:
			return fmt.Sprintf("%d-day streak and counting! %s\n\nThink you can do better? Prove it 👀\n\nStreak Pick'em: %s", streak, emoji, appURL)
		case streak < 10:
			return fmt.Sprintf("🔥 %d-day streak! I'm on fire! %s\n\nCan anyone beat this? Challenge accepted? 😏\n\nStreak Pick'em: %s", streak, emoji, appURL)
		default:
			return fmt.Sprintf("🚨 INSANE %d-DAY STREAK! 🚨\n\nI'm basically a sports oracle at this point 🔮\n\nThink you can match this? Good luck 😤\n\nStreak Pick'em: %s", streak, appURL)
		}
	}
}
