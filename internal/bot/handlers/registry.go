package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a handler with its match rule and middleware.
// It encapsulates all information needed to register and document a handler.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes and returns a map of all available bot
// handlers: slash commands, the reply-keyboard shortcuts, and the callback
// query router. Multi-step text and photo input flows are served by the
// default handler, which is wired separately (see NewDefaultHandler).
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	authMiddleware := []tgbot.Middleware{AuthorizedOnly(deps)}
	managerMiddleware := []tgbot.Middleware{AuthorizedOnly(deps), ManagerSession(deps)}
	adminMiddleware := []tgbot.Middleware{AuthorizedOnly(deps), AdminOnly(deps)}

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  authMiddleware,
	}
	handlers["/help"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "help",
		Handler:     NewHelpHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  authMiddleware,
	}
	handlers["/settings"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "settings",
		Handler:     NewSettingsHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  authMiddleware,
	}
	handlers["/cancel"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "cancel",
		Handler:     NewCancelHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  authMiddleware,
	}

	// Reply-keyboard shortcuts mirror the /help and /settings commands.
	handlers["btn_help"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "ℹ️ Help",
		Handler:     NewHelpHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
		Middleware:  authMiddleware,
	}
	handlers["btn_settings"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "⚙️ Settings",
		Handler:     NewSettingsHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
		Middleware:  authMiddleware,
	}

	handlers["/manager"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "manager",
		Handler:     NewManagerLoginHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  authMiddleware,
	}
	handlers["/logout"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "logout",
		Handler:     NewLogoutHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  authMiddleware,
	}
	handlers["/post"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "post",
		Handler:     NewPostMenuHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  managerMiddleware,
	}
	handlers["/pending"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "pending",
		Handler:     NewPendingHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  managerMiddleware,
	}
	handlers["/status"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "status",
		Handler:     NewManagerStatsHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  managerMiddleware,
	}

	handlers["/admin"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "admin",
		Handler:     NewAdminHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  adminMiddleware,
	}
	handlers["/stats"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "stats",
		Handler:     NewAdminStatsHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  adminMiddleware,
	}
	handlers["/setting"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "setting",
		Handler:     NewAdminSettingsHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  adminMiddleware,
	}
	handlers["/broadcast"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "broadcast",
		Handler:     NewBroadcastHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  adminMiddleware,
	}

	// Single router for every inline keyboard callback.
	handlers["callbacks"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     "",
		Handler:     NewCallbackHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}

	return handlers
}
