package handlers

import (
	"net/http"

	"github.com/takdanai-ph/taskboard/services"

	"github.com/gorilla/mux"
)

type TeamHandler struct {
	teams *services.TeamService
}

func NewTeamHandler(teams *services.TeamService) TeamHandler {
	return TeamHandler{teams: teams}
}

func (h TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	team, err := h.teams.Create(actorFromContext(r), req.Name, req.Description)
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(team, http.StatusCreated, w)
}

func (h TeamHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.GetAll()
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(teams, http.StatusOK, w)
}

func (h TeamHandler) GetById(w http.ResponseWriter, r *http.Request) {
	team, err := h.teams.GetById(mux.Vars(r)["id"])
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(team, http.StatusOK, w)
}

func (h TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	team, err := h.teams.Update(actorFromContext(r), mux.Vars(r)["id"], req.Name, req.Description)
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(team, http.StatusOK, w)
}

func (h TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.teams.Delete(actorFromContext(r), mux.Vars(r)["id"]); err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(nil, http.StatusNoContent, w)
}

func (h TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		UserId string `json:"user_id"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	team, err := h.teams.AddMember(actorFromContext(r), mux.Vars(r)["id"], req.UserId)
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(team, http.StatusOK, w)
}

func (h TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	team, err := h.teams.RemoveMember(actorFromContext(r), vars["id"], vars["userId"])
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(team, http.StatusOK, w)
}

func (h TeamHandler) SetLeader(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		UserId string `json:"user_id"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	team, err := h.teams.SetLeader(actorFromContext(r), mux.Vars(r)["id"], req.UserId)
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(team, http.StatusOK, w)
}
