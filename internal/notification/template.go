package notification

import "fmt"

func winTemplate(name, prizeTitle string) string {
	template := fmt.Sprintf(`
		<html>
        <body>
            <h2>Félicitations !</h2>
            <p>Bonjour %s,</p>
            <p>Vous venez de remporter : <strong>%s</strong>.</p>
            <p>Présentez cet email en caisse dans votre restaurant pour récupérer votre lot.</p>
            <br>
            <p>À très vite,<br>L'équipe du jeu</p>
        </body>
        </html>
		`, name, prizeTitle)
	return template
}
