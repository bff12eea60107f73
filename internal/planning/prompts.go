package planning

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/calplan/internal/domain"
)

const contextSystemPrompt = `Tu es un expert en dynamique de travail et en gestion de calendrier. Génère un contexte professionnel réaliste pour une application de planification de calendrier. Toutes tes réponses doivent être en français.`

const contextUserPrompt = `Génère un contexte professionnel réaliste pour une application de planification de calendrier.

Crée un contexte professionnel aléatoire et TRÈS DIVERSIFIÉ : cela peut être un cabinet d'avocats, un hôpital, une équipe sportive, une école, une entreprise artisanale, une agence gouvernementale, un restaurant, une entreprise agricole ou tout autre cadre professionnel. Sois créatif et spécifique, en évitant les contextes trop typiques de startups tech.

Pour ce contexte, fournis :

1. Le type d'entreprise/organisation
2. Le nom de l'entreprise/organisation (fictif mais réaliste)
3. Une liste de 5-7 collègues avec :
   - Nom (des noms français)
   - Titre de poste spécifique au lieu de travail choisi
4. Un utilisateur actuel (moi) avec :
   - Nom (un nom français)
   - Titre de poste
   - Exactement 3 objectifs professionnels spécifiques à atteindre prochainement
5. Un ensemble de 10-15 réunions comprenant :
   - Titre (spécifique au lieu de travail)
   - Description
   - Heure de début et de fin (dans les 7 prochains jours, à partir du %s)
   - Si la réunion est flexible/peut être reprogrammée
   - Liste des participants (uniquement des identifiants de collègues ou de l'utilisateur actuel)
   - À quel objectif la réunion est liée (pour les réunions de l'utilisateur actuel)
   - Lieu (nom de salle, virtuel ou lieu externe)

IMPORTANT : Assure-toi que TOUT le contenu textuel soit en français. Les noms, titres, descriptions, tout doit être en français.

Retourne les données sous forme d'objet JSON avec cette structure :
{
  "companyType": "Type d'entreprise/organisation",
  "companyName": "Nom de l'entreprise/organisation",
  "colleagues": [
    {
      "id": "unique-id-1",
      "name": "Nom du collègue",
      "job": "Titre du poste",
      "meetings": ["meeting-id-1", "meeting-id-2"]
    }
  ],
  "currentUser": {
    "id": "user-id",
    "name": "Nom de l'utilisateur",
    "job": "Titre du poste de l'utilisateur",
    "meetings": ["meeting-id-1", "meeting-id-3"],
    "objectives": ["Objectif 1", "Objectif 2", "Objectif 3"]
  },
  "meetings": [
    {
      "id": "meeting-id-1",
      "title": "Titre de la réunion",
      "description": "Description de la réunion",
      "startTime": "YYYY-MM-DDTHH:MM:SS",
      "endTime": "YYYY-MM-DDTHH:MM:SS",
      "isFlexible": true,
      "participants": ["user-id", "colleague-id-1"],
      "objective": "Objectif associé ou chaîne vide",
      "location": "Lieu de la réunion"
    }
  ]
}

Sois créatif avec le contexte, mais assure-toi qu'il soit réaliste et que les réunions reflètent le type de lieu de travail sélectionné. Utilise différents types d'organisation : juridique, éducation, agriculture, sports, artisanat, service public, santé, etc.`

const calendarSystemPrompt = `Tu es un expert en planification de calendrier. Ta mission est de générer un emploi du temps optimal qui permettra à l'utilisateur d'atteindre ses objectifs professionnels tout en respectant ses préférences et contraintes. Tes réponses doivent être intégralement en français.`

func buildContextPrompt(today string) string {
	return fmt.Sprintf(contextUserPrompt, today)
}

func buildCalendarPrompt(req domain.CalendarRequest) (string, error) {
	commitments, err := json.Marshal(req.ExistingCommitments)
	if err != nil {
		return "", fmt.Errorf("encoding commitments: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Génère un planning de calendrier optimisé pour un %s du %s au %s.\n\n", req.UserRole, req.StartDate, req.EndDate)
	b.WriteString("Détails :\n")
	fmt.Fprintf(&b, "- Heures de travail : %s à %s\n", req.WorkingHoursStart, req.WorkingHoursEnd)
	fmt.Fprintf(&b, "- Préférences de réunion : %s\n", strings.Join(req.MeetingPreferences, ", "))
	fmt.Fprintf(&b, "- Engagements existants : %s\n", commitments)
	fmt.Fprintf(&b, "- Densité des réunions : %s\n\n", req.MeetingDensity)

	b.WriteString("Objectifs à atteindre :\n")
	for i, obj := range req.Objectives {
		fmt.Fprintf(&b, "%d. %s\n", i+1, obj)
	}

	b.WriteString(`
Créer un calendrier optimal qui permettra à l'utilisateur d'atteindre ses objectifs tout en respectant ses contraintes. Inclure :

1. Du temps dédié pour travailler sur chaque objectif
2. Les réunions obligatoires (existantes et non flexibles), inchangées
3. Les réunions reprogrammées de manière optimale (celles qui sont flexibles)
4. Du temps pour la réflexion, la préparation et le suivi
5. Des pauses et du temps personnel (déjeuner, etc.)

IMPORTANT : Pour chaque événement créé qui concerne un objectif spécifique, inclus dans la description une mention claire comme "Lié à l'Objectif 1: [texte de l'objectif]". C'est crucial pour la visualisation dans l'interface.

Pour chaque événement, fournir :
- Titre (réaliste et spécifique)
- Description (brève mais informative, mentionnant explicitement quel objectif est concerné si applicable)
- Date et heure de début
- Date et heure de fin
- Participants (noms et rôles)
- Emplacement (salle, virtuel ou lieu externe)

Formater la réponse comme un objet JSON avec cette structure :
{
  "events": [
    {
      "title": "Titre de l'événement",
      "description": "Description de l'événement",
      "startTime": "YYYY-MM-DDTHH:MM:SS",
      "endTime": "YYYY-MM-DDTHH:MM:SS",
      "participants": [{"name": "Nom", "role": "Rôle"}],
      "location": "Emplacement"
    }
  ]
}

Assure-toi que :
1. Les horaires ne se chevauchent pas
2. Les réunions ont des durées appropriées
3. L'emploi du temps est optimal pour atteindre les 3 objectifs de l'utilisateur
4. La distribution des tâches respecte les contraintes du calendrier (pas de réunions à des moments explicitement indiqués comme non disponibles)
5. Toute période de travail sur un objectif est clairement étiquetée dans la description avec la référence à l'objectif
`)
	return b.String(), nil
}
