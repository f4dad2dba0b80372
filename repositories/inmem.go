package repositories

import (
	"sort"
	"time"

	"github.com/takdanai-ph/taskboard/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories backing the service tests. They implement the same
// domain interfaces as the Mongo and Cassandra repos.

func NewUserInMem() domain.UserRepository {
	return &userInMemRepo{users: make(map[primitive.ObjectID]domain.User)}
}

type userInMemRepo struct {
	users map[primitive.ObjectID]domain.User
}

func (u *userInMemRepo) GetAll() (domain.Users, error) {
	users := make(domain.Users, 0, len(u.users))
	for id := range u.users {
		user := u.users[id]
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (u *userInMemRepo) GetById(id string) (*domain.User, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound()
	}
	user, ok := u.users[objId]
	if !ok {
		return nil, domain.ErrUserNotFound()
	}
	return &user, nil
}

func (u *userInMemRepo) GetByUsername(username string) (*domain.User, error) {
	for _, user := range u.users {
		if user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound()
}

func (u *userInMemRepo) GetByEmail(email string) (*domain.User, error) {
	for _, user := range u.users {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound()
}

func (u *userInMemRepo) GetByResetToken(token string) (*domain.User, error) {
	for _, user := range u.users {
		if token != "" && user.ResetToken == token {
			user := user
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound()
}

func (u *userInMemRepo) Insert(user domain.User) (domain.User, error) {
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	for _, existing := range u.users {
		if existing.Username == user.Username {
			return domain.User{}, domain.ErrUserAlreadyExists()
		}
	}
	u.users[user.Id] = user
	return user, nil
}

func (u *userInMemRepo) Update(user domain.User) error {
	if _, ok := u.users[user.Id]; !ok {
		return domain.ErrUserNotFound()
	}
	u.users[user.Id] = user
	return nil
}

func (u *userInMemRepo) Delete(id string) error {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound()
	}
	if _, ok := u.users[objId]; !ok {
		return domain.ErrUserNotFound()
	}
	delete(u.users, objId)
	return nil
}

func NewTaskInMem() domain.TaskRepository {
	return &taskInMemRepo{tasks: make(map[primitive.ObjectID]domain.Task)}
}

type taskInMemRepo struct {
	tasks map[primitive.ObjectID]domain.Task
}

func (t *taskInMemRepo) GetAll() (domain.Tasks, error) {
	tasks := make(domain.Tasks, 0, len(t.tasks))
	for id := range t.tasks {
		task := t.tasks[id]
		tasks = append(tasks, &task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

func (t *taskInMemRepo) GetById(id string) (*domain.Task, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound()
	}
	task, ok := t.tasks[objId]
	if !ok {
		return nil, domain.ErrTaskNotFound()
	}
	return &task, nil
}

func (t *taskInMemRepo) GetByAssignee(userId string) (domain.Tasks, error) {
	var tasks domain.Tasks
	for id := range t.tasks {
		task := t.tasks[id]
		if task.AssigneeId != nil && task.AssigneeId.Hex() == userId {
			tasks = append(tasks, &task)
		}
	}
	return tasks, nil
}

func (t *taskInMemRepo) Insert(task domain.Task) (domain.Task, error) {
	if task.Id.IsZero() {
		task.Id = primitive.NewObjectID()
	}
	t.tasks[task.Id] = task
	return task, nil
}

func (t *taskInMemRepo) Update(task domain.Task) error {
	if _, ok := t.tasks[task.Id]; !ok {
		return domain.ErrTaskNotFound()
	}
	t.tasks[task.Id] = task
	return nil
}

func (t *taskInMemRepo) Delete(id string) error {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound()
	}
	if _, ok := t.tasks[objId]; !ok {
		return domain.ErrTaskNotFound()
	}
	delete(t.tasks, objId)
	return nil
}

func NewTeamInMem() domain.TeamRepository {
	return &teamInMemRepo{teams: make(map[primitive.ObjectID]domain.Team)}
}

type teamInMemRepo struct {
	teams map[primitive.ObjectID]domain.Team
}

func (t *teamInMemRepo) GetAll() (domain.Teams, error) {
	teams := make(domain.Teams, 0, len(t.teams))
	for id := range t.teams {
		team := t.teams[id]
		teams = append(teams, &team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

func (t *teamInMemRepo) GetById(id string) (*domain.Team, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTeamNotFound()
	}
	team, ok := t.teams[objId]
	if !ok {
		return nil, domain.ErrTeamNotFound()
	}
	return &team, nil
}

func (t *teamInMemRepo) FindByName(name string) (*domain.Team, error) {
	for _, team := range t.teams {
		if team.Name == name {
			team := team
			return &team, nil
		}
	}
	return nil, nil
}

func (t *teamInMemRepo) Insert(team domain.Team) (domain.Team, error) {
	if team.Id.IsZero() {
		team.Id = primitive.NewObjectID()
	}
	t.teams[team.Id] = team
	return team, nil
}

func (t *teamInMemRepo) Update(team domain.Team) error {
	if _, ok := t.teams[team.Id]; !ok {
		return domain.ErrTeamNotFound()
	}
	t.teams[team.Id] = team
	return nil
}

func (t *teamInMemRepo) Delete(id string) error {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTeamNotFound()
	}
	if _, ok := t.teams[objId]; !ok {
		return domain.ErrTeamNotFound()
	}
	delete(t.teams, objId)
	return nil
}

func NewNotificationInMem() domain.NotificationRepository {
	return &notificationInMemRepo{}
}

type notificationInMemRepo struct {
	notifications []domain.Notification
}

func (n *notificationInMemRepo) GetAllByUserID(userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, notification := range n.notifications {
		if notification.UserID == userID {
			out = append(out, notification)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (n *notificationInMemRepo) Insert(notification *domain.Notification) error {
	notification.ID = uuid.NewString()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	n.notifications = append(n.notifications, *notification)
	return nil
}

func (n *notificationInMemRepo) MarkAsRead(userID, id string) error {
	for i, notification := range n.notifications {
		if notification.UserID == userID && notification.ID == id {
			n.notifications[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound()
}

func (n *notificationInMemRepo) MarkAllAsRead(userID string) error {
	for i, notification := range n.notifications {
		if notification.UserID == userID {
			n.notifications[i].IsRead = true
		}
	}
	return nil
}

func (n *notificationInMemRepo) Delete(userID, id string) error {
	for i, notification := range n.notifications {
		if notification.UserID == userID && notification.ID == id {
			n.notifications = append(n.notifications[:i], n.notifications[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotificationNotFound()
}
