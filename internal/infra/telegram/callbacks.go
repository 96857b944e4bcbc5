package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

// Inline keyboard callback data. Telegram limits it to 64 bytes, so actions
// are short prefixes followed by numbers.
const (
	cbBack          = "q_back"
	cbAccept        = "rcp_ok"
	cbOtherRecipe   = "rcp_other"
	cbFlowerGo      = "flower_go"
	cbSave          = "save"
	cbFinish        = "finish"
	cbPrefixAnswer  = "q_"
	cbPrefixPick    = "rcp_pick_"
	cbPrefixProfile = "prof_"
)

type callbackAction int

const (
	actionAnswer callbackAction = iota + 1
	actionBack
	actionAccept
	actionOtherRecipe
	actionPickRecipe
	actionFlowerGo
	actionSave
	actionFinish
	actionProfileMenu
	actionProfileRecipe
)

// callback is decoded callback data. Question and option are zero-based,
// Profile is the 1-based number shown in the library list and Recipe indexes
// the catalog.
type callback struct {
	action   callbackAction
	question int
	option   int
	recipe   int
	profile  int
}

var ErrInvalidCallback = fmt.Errorf("invalid callback data")

func answerData(question, option int) string {
	return fmt.Sprintf("%s%d_%d", cbPrefixAnswer, question, option)
}

func pickRecipeData(recipe int) string {
	return fmt.Sprintf("%s%d", cbPrefixPick, recipe)
}

func profileMenuData(profile int) string {
	return fmt.Sprintf("%s%d", cbPrefixProfile, profile)
}

func profileRecipeData(profile, recipe int) string {
	return fmt.Sprintf("%s%d_%d", cbPrefixProfile, profile, recipe)
}

func parseCallback(data string) (callback, error) {
	switch data {
	case cbBack:
		return callback{action: actionBack}, nil
	case cbAccept:
		return callback{action: actionAccept}, nil
	case cbOtherRecipe:
		return callback{action: actionOtherRecipe}, nil
	case cbFlowerGo:
		return callback{action: actionFlowerGo}, nil
	case cbSave:
		return callback{action: actionSave}, nil
	case cbFinish:
		return callback{action: actionFinish}, nil
	}

	switch {
	case strings.HasPrefix(data, cbPrefixPick):
		nums, err := parseNumbers(strings.TrimPrefix(data, cbPrefixPick), 1)
		if err != nil {
			return callback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		return callback{action: actionPickRecipe, recipe: nums[0]}, nil

	case strings.HasPrefix(data, cbPrefixAnswer):
		nums, err := parseNumbers(strings.TrimPrefix(data, cbPrefixAnswer), 2)
		if err != nil {
			return callback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		return callback{action: actionAnswer, question: nums[0], option: nums[1]}, nil

	case strings.HasPrefix(data, cbPrefixProfile):
		rest := strings.TrimPrefix(data, cbPrefixProfile)
		if nums, err := parseNumbers(rest, 1); err == nil {
			return callback{action: actionProfileMenu, profile: nums[0]}, nil
		}
		nums, err := parseNumbers(rest, 2)
		if err != nil {
			return callback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		return callback{action: actionProfileRecipe, profile: nums[0], recipe: nums[1]}, nil
	}

	return callback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
}

// parseNumbers splits s on "_" into exactly n non-negative integers.
func parseNumbers(s string, n int) ([]int, error) {
	parts := strings.Split(s, "_")
	if len(parts) != n {
		return nil, ErrInvalidCallback
	}
	nums := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, ErrInvalidCallback
		}
		nums[i] = v
	}
	return nums, nil
}
