package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

func currentUserID(c *gin.Context) (uuid.UUID, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil, errors.New("user_id missing from context")
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, errors.New("user_id has unexpected type")
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errors.New("user_id is not a valid id")
	}
	return id, nil
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.New("invalid id")
	}
	return id, nil
}
