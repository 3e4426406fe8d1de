package storage

import (
	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/docstore"
)

func UserPath(uid string) docstore.Path {
	return docstore.Path(constants.UsersCollection).Doc(uid)
}

func ArchivedUserPath(uid string) docstore.Path {
	return docstore.Path(constants.ArchivedUsersCollection).Doc(uid)
}

func PlantsPath(uid string) docstore.Path {
	return UserPath(uid).Collection(constants.PlantsCollection)
}

func PlantPath(uid, id string) docstore.Path {
	return PlantsPath(uid).Doc(id)
}

func LogsPath(uid, plantID string) docstore.Path {
	return PlantPath(uid, plantID).Collection(constants.LogsCollection)
}

func LogPath(uid, plantID, id string) docstore.Path {
	return LogsPath(uid, plantID).Doc(id)
}

func RemindersPath(uid string) docstore.Path {
	return UserPath(uid).Collection(constants.RemindersCollection)
}

func ReminderPath(uid, id string) docstore.Path {
	return RemindersPath(uid).Doc(id)
}

func SessionsPath(uid string) docstore.Path {
	return UserPath(uid).Collection(constants.SessionsCollection)
}

func SessionPath(uid, id string) docstore.Path {
	return SessionsPath(uid).Doc(id)
}

func PreferencesPath(uid string) docstore.Path {
	return UserPath(uid).Collection(constants.SettingsCollection).Doc(constants.PreferencesDocID)
}
