package service

// AccessService проверяет принадлежность chatID к списку операторов.
// Список фиксируется на старте процесса и дальше не меняется.
type AccessService struct {
	admins map[int64]struct{}
}

func NewAccessService(adminIDs []int64) *AccessService {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &AccessService{admins: admins}
}

func (a *AccessService) IsAdmin(chatID int64) bool {
	_, ok := a.admins[chatID]
	return ok
}
