package usecase

import "github.com/DRSN-tech/storefront-backend/internal/domain"

// Role — роль вызывающего в терминах политики доступа.
type Role int

const (
	RoleAnonymous Role = iota
	RoleCustomer
	RoleAdmin
)

// Ownership — отношение вызывающего к целевой сущности.
type Ownership int

const (
	// OwnershipAny — операция не привязана к конкретной сущности.
	OwnershipAny Ownership = iota
	OwnershipOwner
	OwnershipOther
)

// Operation — операция, проверяемая политикой доступа.
type Operation int

const (
	OpProductRead Operation = iota
	OpProductWrite
	OpOrderCreate
	OpOrderRead
	OpOrderWrite
)

// Role возвращает роль вызывающего.
func (id Identity) Role() Role {
	switch {
	case id.UserID == 0:
		return RoleAnonymous
	case id.IsAdmin:
		return RoleAdmin
	default:
		return RoleCustomer
	}
}

// Owns возвращает отношение вызывающего к заказу.
func (id Identity) Owns(order *domain.Order) Ownership {
	if order.UserID == id.UserID {
		return OwnershipOwner
	}
	return OwnershipOther
}

type policyKey struct {
	op   Operation
	role Role
	own  Ownership
}

// accessTable — явная таблица (операция, роль, владение) -> разрешено.
// Отсутствующая комбинация означает запрет.
var accessTable = map[policyKey]bool{
	// Чтение каталога открыто всем.
	{OpProductRead, RoleAnonymous, OwnershipAny}: true,
	{OpProductRead, RoleCustomer, OwnershipAny}:  true,
	{OpProductRead, RoleAdmin, OwnershipAny}:     true,

	// Запись каталога — только администратору.
	{OpProductWrite, RoleAdmin, OwnershipAny}: true,

	// Создать заказ может любой аутентифицированный пользователь.
	{OpOrderCreate, RoleCustomer, OwnershipAny}: true,
	{OpOrderCreate, RoleAdmin, OwnershipAny}:    true,

	// Покупатель видит и меняет только собственные заказы,
	// администратор — любые.
	{OpOrderRead, RoleCustomer, OwnershipOwner}: true,
	{OpOrderRead, RoleAdmin, OwnershipAny}:      true,
	{OpOrderRead, RoleAdmin, OwnershipOwner}:    true,
	{OpOrderRead, RoleAdmin, OwnershipOther}:    true,

	{OpOrderWrite, RoleCustomer, OwnershipOwner}: true,
	{OpOrderWrite, RoleAdmin, OwnershipAny}:      true,
	{OpOrderWrite, RoleAdmin, OwnershipOwner}:    true,
	{OpOrderWrite, RoleAdmin, OwnershipOther}:    true,
}

// Allowed сообщает, разрешена ли операция для данной роли и владения.
func Allowed(op Operation, role Role, own Ownership) bool {
	return accessTable[policyKey{op, role, own}]
}
